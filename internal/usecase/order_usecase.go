package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文番号が衝突したときに新しい番号で作り直す回数
const maxOrderNumberRetries = 2

// 注文確定と注文履歴。
// カート読込→検証→在庫減算→注文保存→カートクリアを1トランザクションで行う。
type OrderUsecase struct {
	tx  repo.TransactionManager
	log *slog.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, log *slog.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, log: log}
}

type PlaceOrderOutput struct {
	OrderNumber string `json:"order_number"`
}

type OrderItemOutput struct {
	ProductID          int64            `json:"product_id"`
	ProductName        string           `json:"product_name"`
	Quantity           int64            `json:"quantity"`
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	DiscountAtPurchase *decimal.Decimal `json:"discount_at_purchase"`
}

type OrderOutput struct {
	OrderNumber string            `json:"order_number"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemOutput `json:"items"`
	Total       decimal.Decimal   `json:"total"`
}

// PlaceOrder はカートを注文に変換する唯一の入口。
// 失敗したら在庫もカートも一切変わらない。成功したら注文番号を返す。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string) (PlaceOrderOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	out, err := u.placeOnce(ctx, userID)
	if err == nil {
		return out, nil
	}
	if oe, ok := AsOrderError(err); ok {
		return PlaceOrderOutput{}, oe
	}
	if he, ok := AsHTTPError(err); ok {
		return PlaceOrderOutput{}, he
	}

	//ここに来るのはDB障害か、リトライしても番号が衝突し続けた場合
	u.log.Error("place order failed", "user_id", userID, "error", err)
	return PlaceOrderOutput{}, NewOrderError(OrderErrPersistence, "")
}

// 1回ぶんの注文トランザクション
func (u *OrderUsecase) placeOnce(ctx context.Context, userID string) (PlaceOrderOutput, error) {
	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カートを明細＋商品込みで取得（この場で読み直す。画面で見た値は信用しない）
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewOrderError(OrderErrEmptyCart, "")
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return NewOrderError(OrderErrEmptyCart, "")
		}

		//検証：商品が存在する→在庫が1以上→数量が在庫以下、の順で全明細をチェック
		lines := make([]OrderLine, 0, len(cart.Items))
		for _, ci := range cart.Items {
			if ci.Quantity <= 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}

			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				//削除済みの場合、Preloadした（Unscopedの）商品から名前だけ拾う
				name := ""
				if ci.Product != nil {
					name = ci.Product.Name
				}
				return NewOrderError(OrderErrProductVanished, name)
			}
			if err != nil {
				return err
			}

			if p.AvailableQuantity <= 0 {
				return NewOrderError(OrderErrOutOfStock, p.Name)
			}
			if ci.Quantity > p.AvailableQuantity {
				return NewOrderError(OrderErrInsufficientStock, p.Name)
			}

			//この時点の価格・割引をスナップショット
			lines = append(lines, OrderLine{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    ci.Quantity,
				UnitPrice:   p.Price,
				Discount:    p.Discount,
			})
		}

		order, err := BuildOrder(userID, lines, time.Now())
		if err != nil {
			return err
		}

		//在庫減算。検証を通っていても、同時注文に先を越されていたらここでfalseになる
		for _, l := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return NewOrderError(OrderErrInsufficientStock, l.ProductName)
			}
		}

		//番号衝突のときだけ、番号を作り直して挿入をやり直す。
		//挿入はSAVEPOINT内なので、ここまでの在庫減算はそのまま生きる。
		var created model.Order
		for attempt := 0; ; attempt++ {
			created, err = r.Orders().Create(ctx, order)
			if err == nil {
				break
			}
			if !errors.Is(err, repo.ErrDuplicateOrderNumber) || attempt >= maxOrderNumberRetries {
				return err
			}
			order.OrderNumber = GenerateOrderNumber(time.Now())
		}

		//カートをクリア（同じトランザクション内）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return err
		}

		out = PlaceOrderOutput{OrderNumber: created.OrderNumber}
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

// ListMyOrders は注文履歴を新しい順で返す（読み取りのみ）。
// totalは明細のスナップショットから（単価−割引）×数量で計算する。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	total := decimal.Zero

	for _, it := range o.Items {
		//商品が後から消えていたら名前は空のまま
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}

		var discount *decimal.Decimal
		if it.DiscountAtPurchase.Valid {
			d := it.DiscountAtPurchase.Decimal
			discount = &d
		}

		items = append(items, OrderItemOutput{
			ProductID:          it.ProductID,
			ProductName:        name,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			DiscountAtPurchase: discount,
		})

		total = total.Add(lineSubtotal(it.UnitPrice, it.DiscountAtPurchase, it.Quantity))
	}

	return OrderOutput{
		OrderNumber: o.OrderNumber,
		CreatedAt:   o.CreatedAt,
		Items:       items,
		Total:       total,
	}
}
