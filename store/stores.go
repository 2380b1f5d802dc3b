package store

// Store names. The set of stores and their indexed fields is fixed at
// compile time; the schema migrations create exactly these tables.
const (
	Chats     = "chats"
	Messages  = "messages"
	Settings  = "settings"
	Costs     = "costs"
	Documents = "documents"
)

// storeIndexes lists the indexed record fields per store, in column order.
var storeIndexes = map[string][]string{
	Chats:     {"createdAt", "updatedAt"},
	Messages:  {"chatId", "createdAt"},
	Settings:  {},
	Costs:     {"chatId", "messageId", "timestamp"},
	Documents: {"createdAt", "updatedAt", "userId"},
}

// Stores returns all store names in a stable order.
func Stores() []string {
	return []string{Chats, Messages, Settings, Costs, Documents}
}

func hasIndex(store, index string) bool {
	for _, name := range storeIndexes[store] {
		if name == index {
			return true
		}
	}
	return false
}
