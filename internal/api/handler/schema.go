package handler

import (
	"time"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/service"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Name    string `json:"name"    validate:"required"`
	Contact string `json:"contact" validate:"required"`
}

type elevateRequest struct {
	Password string `json:"password" validate:"required"`
}

type addItemRequest struct {
	Name        string `json:"name"        validate:"required"`
	Quantity    int    `json:"quantity"    validate:"required,min=1"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// --- Response types ---

type identityResponse struct {
	Name     string      `json:"name"`
	Contact  string      `json:"contact"`
	Role     domain.Role `json:"role"`
	Initials string      `json:"initials"`
}

type sessionResponse struct {
	Stage    domain.LoginStage `json:"stage"`
	Identity *identityResponse `json:"identity,omitempty"`
	CartSize int               `json:"cart_size"`
	// UID is the token to carry in the uid query parameter of later requests.
	UID string `json:"uid,omitempty"`
}

type cartResponse struct {
	Items []domain.LineItem `json:"items"`
}

type orderResponse struct {
	OrderID   string    `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
	Items     int       `json:"items"`
}

type datasetResponse struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
	Count   int                 `json:"count"`
}

func toSessionResponse(sess *service.SessionContext, uid string) sessionResponse {
	resp := sessionResponse{Stage: sess.Stage, CartSize: len(sess.Cart), UID: uid}
	if id := sess.Identity; id != nil {
		resp.Identity = &identityResponse{
			Name:     id.Name,
			Contact:  id.Contact,
			Role:     id.Role,
			Initials: id.Initials(),
		}
	}
	return resp
}

func toCartResponse(sess *service.SessionContext) cartResponse {
	items := sess.Cart
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{Items: items}
}

func toDatasetResponse(ds domain.Dataset) datasetResponse {
	return datasetResponse{Columns: ds.Columns, Rows: ds.Records(), Count: ds.Len()}
}
