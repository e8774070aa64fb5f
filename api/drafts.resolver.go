package api

import (
	"carteira/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Drafts hold the in-progress operations form so the client restores it on
// page load. Anonymous drafts are open; drafts saved under a token are only
// readable by that token's subject.

func (m ApiHandler) saveDraft(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		returnErrorCode(c, 400, "O identificador do rascunho deve ser um UUID.")
		return
	}

	payload, err := c.GetRawData()
	if err != nil || len(payload) == 0 {
		returnErrorCode(c, 400, "O corpo do rascunho não pode ser vazio.")
		return
	}

	existing, err := m.DraftRepository.Get(id)
	if err != nil {
		returnError(c, err)
		return
	}
	owner := ownerFromContext(c)
	if existing != nil && !canAccessDraft(existing, owner) {
		returnErrorCode(c, 403, "Você não tem permissão para alterar este rascunho.")
		return
	}

	err = m.DraftRepository.Save(domain.Draft{
		ID:      id,
		Owner:   owner,
		Payload: payload,
	})
	if err != nil {
		returnError(c, err)
		return
	}
	c.JSON(200, gin.H{"id": id})
}

func (m ApiHandler) getDraft(c *gin.Context) {
	draft, ok := m.loadDraft(c)
	if !ok {
		return
	}
	c.Data(200, "application/json", draft.Payload)
}

func (m ApiHandler) deleteDraft(c *gin.Context) {
	draft, ok := m.loadDraft(c)
	if !ok {
		return
	}
	if err := m.DraftRepository.Delete(draft.ID); err != nil {
		returnError(c, err)
		return
	}
	c.Status(204)
}

func (m ApiHandler) loadDraft(c *gin.Context) (*domain.Draft, bool) {
	id := c.Param("id")
	draft, err := m.DraftRepository.Get(id)
	if err != nil {
		returnError(c, err)
		return nil, false
	}
	if draft == nil {
		returnErrorCode(c, 404, "Rascunho não encontrado.")
		return nil, false
	}
	if !canAccessDraft(draft, ownerFromContext(c)) {
		returnErrorCode(c, 403, "Você não tem permissão para acessar este rascunho.")
		return nil, false
	}
	return draft, true
}

func canAccessDraft(draft *domain.Draft, owner string) bool {
	return draft.Owner == anonymousOwner || draft.Owner == owner
}
