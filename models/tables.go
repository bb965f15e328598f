package models

// TableName identifies a synced entity kind. The same value is used as the
// local SQLite table name and as the remote collection name.
type TableName string

const (
	TableEvents        TableName = "events"
	TableOffers        TableName = "offers"
	TableArtists       TableName = "artists"
	TableConversations TableName = "conversations"
	TableMessages      TableName = "messages"
)

// AllTables returns every synced table in a stable order.
func AllTables() []TableName {
	return []TableName{
		TableEvents,
		TableOffers,
		TableArtists,
		TableConversations,
		TableMessages,
	}
}

// Valid reports whether t is one of the known synced tables.
func (t TableName) Valid() bool {
	switch t {
	case TableEvents, TableOffers, TableArtists, TableConversations, TableMessages:
		return true
	}
	return false
}

func (t TableName) String() string {
	return string(t)
}
