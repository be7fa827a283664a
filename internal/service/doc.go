// Package service contains the task use cases, independent of HTTP.
//
// TaskService exposes the five task operations. Each call carries the
// caller's resolved identity; ownership is enforced by the store in the same
// statement that reads or writes the row, and a task owned by someone else
// is reported exactly like a missing one (ErrTaskNotFound).
//
// Services receive dependencies through constructor injection and depend on
// store interfaces, never on a specific database implementation.
package service
