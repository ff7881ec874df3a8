package model

// 注文明細。TotalPriceは購入時点の単価×数量で凍結し、
// 後からカタログの価格が変わっても再計算しない。
type OrderLine struct {
	OrderID    int64 `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID  int64 `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity   int64 `gorm:"not null" json:"quantity"`
	TotalPrice int64 `gorm:"not null" json:"total_price"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}
