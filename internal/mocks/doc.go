// Package mocks provides centralized mock implementations for testing.
//
// Each mock has one function field per interface method. A nil field falls
// back to the mock's default return values, so tests only stub what they
// exercise:
//
//	import "github.com/phrazzld/todo-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    svc := &mocks.MockTaskService{
//	        DeleteTaskFn: func(ctx context.Context, owner string, id int64) error {
//	            return service.ErrTaskNotFound
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
