package storage

import "database/sql"

var (
	Events *EventStorage
)

func Init(client *sql.DB) {
	Events = NewEventStorage(client)
}
