// Package store defines the persistence contract for tasks. The interfaces
// here keep the service layer independent of the database in use; concrete
// implementations live under internal/platform.
package store
