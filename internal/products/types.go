package products

// Product is a catalog record. The order pipeline only ever reads these.
type Product struct {
	ID          string  `json:"id" dynamodbav:"id"`
	ProductName string  `json:"productName" dynamodbav:"productName"`
	Code        string  `json:"code" dynamodbav:"code"`
	Price       float64 `json:"price" dynamodbav:"price"`
	Model       string  `json:"model" dynamodbav:"model"`
}
