package database

// Store is the full persistence surface the bot needs.
type Store interface {
	ChannelStore
	KarmaStore
	MessageStore
}
