// Package domain contains the task entity and the value types used to
// create and mutate it. It is independent of storage and transport: stores
// persist these types and the API layer translates them to JSON.
package domain
