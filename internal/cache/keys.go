package cache

const (
	// Catalog read caches: products:all -> full list, products:{id} -> one row
	KeyProductList   = "products:all"
	KeyProductPrefix = "products:"

	// Order list read cache
	KeyOrderList = "orders:all"
)
