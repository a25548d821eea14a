package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend expects plain JSON numbers for prices and VAT rates.
	decimal.MarshalJSONWithoutQuotes = true
}

// Row is one spreadsheet-derived record as exposed by the backend.
type Row struct {
	ID                  int64            `json:"id" csv:"id"`
	MerchantInventoryID string           `json:"merchantInventoryId,omitempty" csv:"merchantInventoryId"`
	ProductName         string           `json:"productName" csv:"productName"`
	EAN                 string           `json:"ean,omitempty" csv:"ean"`
	ACode               string           `json:"aCode,omitempty" csv:"aCode"`
	SKU                 string           `json:"sku,omitempty" csv:"sku"`
	Tags                string           `json:"tags,omitempty" csv:"tags"`
	Status              string           `json:"status,omitempty" csv:"status"`
	Warehouse           string           `json:"warehouse,omitempty" csv:"warehouse"`
	L1Category          string           `json:"l1Category,omitempty" csv:"l1Category"`
	ProductType         string           `json:"productType,omitempty" csv:"productType"`
	BasePriceWithVat    *decimal.Decimal `json:"basePriceWithVat,omitempty" csv:"basePriceWithVat"`
	CurrentStock        *int64           `json:"currentStock,omitempty" csv:"currentStock"`
	NewBasePriceWithVat *decimal.Decimal `json:"newBasePriceWithVat,omitempty" csv:"newBasePriceWithVat"`
	Vat                 *decimal.Decimal `json:"vat,omitempty" csv:"vat"`
	NewVat              *decimal.Decimal `json:"newVat,omitempty" csv:"newVat"`
	UploadID            string           `json:"uploadId,omitempty" csv:"uploadId"`
	RowNumber           *int             `json:"rowNumber,omitempty" csv:"rowNumber"`
	CreatedAt           string           `json:"createdAt,omitempty" csv:"createdAt"`
	UpdatedAt           string           `json:"updatedAt,omitempty" csv:"updatedAt"`
}

// RowInput is the payload for create and update. Nil numerics are omitted
// from the request body rather than sent as zero.
type RowInput struct {
	MerchantInventoryID string           `json:"merchantInventoryId,omitempty" csv:"merchantInventoryId"`
	ProductName         string           `json:"productName" csv:"productName"`
	EAN                 string           `json:"ean,omitempty" csv:"ean"`
	ACode               string           `json:"aCode,omitempty" csv:"aCode"`
	SKU                 string           `json:"sku,omitempty" csv:"sku"`
	Tags                string           `json:"tags,omitempty" csv:"tags"`
	Status              string           `json:"status,omitempty" csv:"status"`
	Warehouse           string           `json:"warehouse,omitempty" csv:"warehouse"`
	L1Category          string           `json:"l1Category,omitempty" csv:"l1Category"`
	ProductType         string           `json:"productType,omitempty" csv:"productType"`
	BasePriceWithVat    *decimal.Decimal `json:"basePriceWithVat,omitempty" csv:"basePriceWithVat"`
	CurrentStock        *int64           `json:"currentStock,omitempty" csv:"currentStock"`
	NewBasePriceWithVat *decimal.Decimal `json:"newBasePriceWithVat,omitempty" csv:"newBasePriceWithVat"`
	Vat                 *decimal.Decimal `json:"vat,omitempty" csv:"vat"`
	NewVat              *decimal.Decimal `json:"newVat,omitempty" csv:"newVat"`
	RowNumber           *int             `json:"rowNumber,omitempty" csv:"rowNumber"`
}

// Input returns the editable part of the row.
func (r Row) Input() RowInput {
	return RowInput{
		MerchantInventoryID: r.MerchantInventoryID,
		ProductName:         r.ProductName,
		EAN:                 r.EAN,
		ACode:               r.ACode,
		SKU:                 r.SKU,
		Tags:                r.Tags,
		Status:              r.Status,
		Warehouse:           r.Warehouse,
		L1Category:          r.L1Category,
		ProductType:         r.ProductType,
		BasePriceWithVat:    r.BasePriceWithVat,
		CurrentStock:        r.CurrentStock,
		NewBasePriceWithVat: r.NewBasePriceWithVat,
		Vat:                 r.Vat,
		NewVat:              r.NewVat,
		RowNumber:           r.RowNumber,
	}
}

// UploadResult is produced once per file upload.
type UploadResult struct {
	UploadID  string `json:"uploadId"`
	TotalRows int    `json:"totalRows"`
	SavedRows int    `json:"savedRows"`
	Message   string `json:"message"`
	Rows      []Row  `json:"rows"`
}

type Message struct {
	Message string `json:"message"`
}
