// Package sqlerr translates PostgreSQL driver errors into API errors.
//
// Raw SQLSTATE codes are mapped onto a small set of categories (unique,
// foreign key, not null, check) and then into errs.HTTPError values whose
// codes and messages talk about LightBnB entities (user, property,
// reservation) instead of tables and constraints.
package sqlerr
