package model

import "time"

type Sale struct {
	ID        int64     `json:"id" db:"id" bson:"_id"`
	BuyerID   int64     `json:"buyer_id" db:"buyer_id" bson:"buyer_id"`
	SellerID  int64     `json:"seller_id" db:"seller_id" bson:"seller_id"`
	DtSale    time.Time `json:"dt_sale" db:"dt_sale" bson:"dt_sale"`
	CreatedAt time.Time `json:"-" db:"created_at" bson:"created_at"`
}

// ProductSale is one line item of a sale.
type ProductSale struct {
	ID        int64   `json:"id" db:"id" bson:"_id"`
	SaleID    int64   `json:"sales_id" db:"sales_id" bson:"sales_id"`
	ProductID int64   `json:"product_id" db:"product_id" bson:"product_id"`
	UnitPrice float64 `json:"unit_price" db:"unit_price" bson:"unit_price"`
	Amount    int     `json:"amount" db:"amount" bson:"amount"`
}

type Delivery struct {
	ID               int64      `json:"id" db:"id" bson:"_id"`
	AddressID        int64      `json:"address_id" db:"address_id" bson:"address_id"`
	SaleID           int64      `json:"sale_id" db:"sale_id" bson:"sale_id"`
	DeliveryForecast *time.Time `json:"delivery_forecast,omitempty" db:"delivery_forecast" bson:"delivery_forecast,omitempty"`
}
