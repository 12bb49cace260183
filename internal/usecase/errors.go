package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 注文確定の失敗種別。
// 呼び出し側には「どの種類で、どの商品か」だけを見せる。
type OrderErrorCode string

const (
	OrderErrEmptyCart         OrderErrorCode = "EMPTY_CART"
	OrderErrProductVanished   OrderErrorCode = "PRODUCT_VANISHED"
	OrderErrOutOfStock        OrderErrorCode = "OUT_OF_STOCK"
	OrderErrInsufficientStock OrderErrorCode = "INSUFFICIENT_STOCK"
	OrderErrPersistence       OrderErrorCode = "PERSISTENCE_FAILURE"
)

type OrderError struct {
	Code        OrderErrorCode
	ProductName string
}

func (e *OrderError) Error() string {
	switch e.Code {
	case OrderErrEmptyCart:
		return "Your cart is empty."
	case OrderErrProductVanished:
		if e.ProductName == "" {
			return "A product in your cart no longer exists."
		}
		return fmt.Sprintf("'%s' is no longer available.", e.ProductName)
	case OrderErrOutOfStock:
		return fmt.Sprintf("'%s' is out of stock.", e.ProductName)
	case OrderErrInsufficientStock:
		return fmt.Sprintf("Requested quantity for '%s' exceeds available stock.", e.ProductName)
	default:
		return "Could not place order."
	}
}

func NewOrderError(code OrderErrorCode, productName string) error {
	return &OrderError{Code: code, ProductName: productName}
}

func AsOrderError(err error) (*OrderError, bool) {
	var oe *OrderError
	ok := errors.As(err, &oe)
	return oe, ok
}

// 注文エラー→HTTPステータス
func (e *OrderError) HTTPStatus() int {
	if e.Code == OrderErrPersistence {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
