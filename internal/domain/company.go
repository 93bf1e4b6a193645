package domain

// Company партнёрская компания-продавец
type Company struct {
	ID             int64
	Name           string
	Slug           string
	EmailForOrders string
	IsActive       bool
}
