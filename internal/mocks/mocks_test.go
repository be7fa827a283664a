package mocks_test

import (
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

var (
	_ service.TaskService = (*mocks.MockTaskService)(nil)
	_ store.TaskStore     = (*mocks.MockTaskStore)(nil)
)
