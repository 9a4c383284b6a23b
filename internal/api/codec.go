package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/averku/storefront/internal/domain/cart"
	"github.com/averku/storefront/internal/domain/item"
	"github.com/averku/storefront/internal/domain/order"
	"github.com/averku/storefront/internal/domain/user"
)

// modifyCartRequest is the body of addToCart and removeFromCart.
type modifyCartRequest struct {
	Username string
	ItemID   int64
	Quantity int
}

// readBody drains the request body up to a sane limit.
func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, 1<<20))
}

func decodeCreateUserRequest(data []byte) (user.CreateRequest, error) {
	var req user.CreateRequest
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "username":
			req.Username, err = d.Str()
		case "password":
			req.Password, err = d.Str()
		case "confirmPassword":
			req.ConfirmPassword, err = d.Str()
		default:
			return d.Skip()
		}
		return err
	})
	return req, err
}

func decodeModifyCartRequest(data []byte) (modifyCartRequest, error) {
	var req modifyCartRequest
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "username":
			req.Username, err = d.Str()
		case "itemId":
			req.ItemID, err = d.Int64()
		case "quantity":
			req.Quantity, err = d.Int()
		default:
			return d.Skip()
		}
		return err
	})
	return req, err
}

// encodeDecimal writes a monetary value as an exact JSON number, avoiding
// the float64 detour that could perturb the decimal representation.
func encodeDecimal(e *jx.Encoder, d decimal.Decimal) {
	e.Num(jx.Num(d.String()))
}

// encodeUser writes the public user representation. The password hash never
// leaves the server.
func encodeUser(e *jx.Encoder, u *user.User) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(u.ID)
	e.FieldStart("username")
	e.Str(u.Username)
	e.ObjEnd()
}

func encodeItem(e *jx.Encoder, it *item.Item) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(it.ID)
	e.FieldStart("name")
	e.Str(it.Name)
	e.FieldStart("description")
	e.Str(it.Description)
	e.FieldStart("price")
	encodeDecimal(e, it.Price)
	e.ObjEnd()
}

func encodeLine(e *jx.Encoder, l cart.Line) {
	e.ObjStart()
	e.FieldStart("itemId")
	e.Int64(l.ItemID)
	e.FieldStart("name")
	e.Str(l.Name)
	e.FieldStart("price")
	encodeDecimal(e, l.Price)
	e.ObjEnd()
}

func encodeCart(e *jx.Encoder, c *cart.Cart) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(c.ID)
	e.FieldStart("userId")
	e.Int64(c.UserID)
	e.FieldStart("items")
	e.ArrStart()
	for _, l := range c.Items {
		encodeLine(e, l)
	}
	e.ArrEnd()
	e.FieldStart("total")
	encodeDecimal(e, c.Total)
	e.ObjEnd()
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(o.ID)
	e.FieldStart("userId")
	e.Int64(o.UserID)
	e.FieldStart("items")
	e.ArrStart()
	for _, l := range o.Items {
		encodeLine(e, l)
	}
	e.ArrEnd()
	e.FieldStart("total")
	encodeDecimal(e, o.Total)
	if !o.CreatedAt.IsZero() {
		e.FieldStart("createdAt")
		e.Str(o.CreatedAt.Format(time.RFC3339))
	}
	e.ObjEnd()
}
