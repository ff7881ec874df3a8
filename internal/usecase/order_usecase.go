package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CheckoutInput struct {
	Address string
}

type OrderLineOutput struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int64 `json:"quantity"`
	TotalPrice int64 `json:"total_price"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	Address    string            `json:"address"`
	TotalPrice int64             `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
	Lines      []OrderLineOutput `json:"lines"`
}

// Checkout はカートを注文に変換する。全体がひとつのトランザクションで、
// どこかで失敗したらカート・在庫・注文はすべて呼び出し前の状態に戻る。
//
// 在庫チェックは「stockが足りるときだけ減算する」条件付きUPDATEで行う。
// 同じトランザクション内の生きた値に対するcheck-and-decrementなので、
// 同一商品への並行チェックアウトが合計で在庫を超えることはない。
// 1行でも足りなければ注文全体を中止する（部分確定はしない）。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "address required")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カートと現在価格をトランザクション内で読む
		cartLines, err := r.Carts().ListWithProducts(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartLines) == 0 {
			//明細ゼロの注文は作らない
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//行ごとに在庫チェック＋減算（stock_statusも同じ文で導出し直す）
		for _, cl := range cartLines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, cl.ProductID, cl.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "insufficient stock")
			}
		}

		//注文作成。TotalPriceは明細作成後にバックフィル
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:    userID,
			Address:   address,
			CreatedAt: now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細作成。価格はこのトランザクションで読んだ値で凍結する
		orderLines := make([]model.OrderLine, 0, len(cartLines))
		var total int64
		for _, cl := range cartLines {
			lineTotal := cl.Price * cl.Quantity
			orderLines = append(orderLines, model.OrderLine{
				OrderID:    orderID,
				ProductID:  cl.ProductID,
				Quantity:   cl.Quantity,
				TotalPrice: lineTotal,
			})
			total += lineTotal
		}
		if err := r.Orders().CreateLines(ctx, orderLines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文合計のバックフィル
		if err := r.Orders().SetTotalPrice(ctx, orderID, total); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にする
		if err := r.Carts().Clear(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{
			ID:         orderID,
			UserID:     userID,
			Address:    address,
			TotalPrice: total,
			CreatedAt:  now,
			Lines:      toLineOutputs(orderLines),
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
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
			lines, err := r.Orders().ListLinesByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, lines))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		lines, err := r.Orders().ListLinesByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, lines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ある商品を含む注文の一覧（管理向け）
func (u *OrderUsecase) ListOrdersByProduct(ctx context.Context, adminUserID int64, productID int64) ([]repo.ProductOrderRow, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var rows []repo.ProductOrderRow

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		rows, err = r.Orders().ListByProductID(ctx, productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func toOrderOutput(o model.Order, lines []model.OrderLine) OrderOutput {
	var total int64
	if o.TotalPrice != nil {
		total = *o.TotalPrice
	}
	return OrderOutput{
		ID:         o.ID,
		UserID:     o.UserID,
		Address:    o.Address,
		TotalPrice: total,
		CreatedAt:  o.CreatedAt,
		Lines:      toLineOutputs(lines),
	}
}

func toLineOutputs(lines []model.OrderLine) []OrderLineOutput {
	outs := make([]OrderLineOutput, 0, len(lines))
	for _, l := range lines {
		outs = append(outs, OrderLineOutput{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			TotalPrice: l.TotalPrice,
		})
	}
	return outs
}
