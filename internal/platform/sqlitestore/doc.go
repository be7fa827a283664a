// Package sqlitestore implements store.TaskStore on an embedded SQLite
// database using zombiezen.com/go/sqlite.
//
// It backs single-user local deployments and hermetic tests. The pool
// applies WAL journaling and a busy timeout to every connection and creates
// the tasks schema the first time each connection is used, so a fresh file
// needs no migration step:
//
//	pool, err := sqlitestore.Open(sqlitestore.Config{Path: "todo.db", Logger: logger})
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//	tasks := sqlitestore.NewTaskStore(pool, logger)
//
// Connections are not safe for concurrent use. Each store call takes its
// own connection from the pool and returns it when the statement finishes.
package sqlitestore
