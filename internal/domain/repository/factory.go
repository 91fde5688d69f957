package repository

// Factory describes access to locally persisted repositories.
type Factory interface {
	Carts() CartRepository
}
