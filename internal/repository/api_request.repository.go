package repository

import (
	"database/sql"
	"fmt"

	"carteira/internal/domain"

	"github.com/google/uuid"
)

type ApiRequestRepository interface {
	Add(request domain.APIRequest) (*domain.APIRequest, error)
	Update(request domain.APIRequest) error
}

func NewApiRequestRepository(db *sql.DB) ApiRequestRepository {
	return apiRequestRepositoryHandler{Db: db}
}

type apiRequestRepositoryHandler struct {
	Db *sql.DB
}

func (h apiRequestRepositoryHandler) Add(request domain.APIRequest) (*domain.APIRequest, error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	_, err := h.Db.Exec(`
		INSERT INTO api_request (api_request_id, user_id, ip_address, method, route, request_body, start_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		request.ID.String(), request.UserID, request.IPAddress,
		request.Method, request.Route, request.RequestBody, request.StartTs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add api request: %w", err)
	}
	return &request, nil
}

func (h apiRequestRepositoryHandler) Update(request domain.APIRequest) error {
	_, err := h.Db.Exec(`
		UPDATE api_request
		SET user_id = ?, duration_ms = ?, status_code = ?, response_body = ?
		WHERE api_request_id = ?`,
		request.UserID, request.DurationMs, request.StatusCode, request.ResponseBody, request.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update api request: %w", err)
	}
	return nil
}
