// Package lib groups support code that sits outside the request path:
// the asynq background jobs (lib/job) and the resend email client (lib/email).
package lib
