package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/contact"
	"outreach-backend/pkg/utils"
)

// ContactHandler handles contact CRUD and duplicate checking.
type ContactHandler struct {
	contacts ports.ContactRepository
	comms    ports.CommunicationRepository
	logger   *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(
	contacts ports.ContactRepository,
	comms ports.CommunicationRepository,
	logger *zap.Logger,
) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		comms:    comms,
		logger:   logger,
	}
}

// CreateContactRequest represents the request body for creating a contact
type CreateContactRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=200"`
	Email            string   `json:"email,omitempty" validate:"omitempty,email"`
	TwitterHandle    string   `json:"twitter_handle,omitempty" validate:"omitempty,max=100"`
	Company          string   `json:"company,omitempty" validate:"omitempty,max=200"`
	Phone            string   `json:"phone,omitempty" validate:"omitempty,max=50"`
	Website          string   `json:"website,omitempty" validate:"omitempty,max=500"`
	Status           string   `json:"status,omitempty" validate:"omitempty,oneof=new contacted responded interested accepted declined"`
	Priority         string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Notes            string   `json:"notes,omitempty"`
	Tags             []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	NextFollowupDate string   `json:"next_followup_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// ListContacts handles GET /contacts
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	filter := ports.ContactFilter{
		Status:   contact.Status(r.URL.Query().Get("status")),
		Priority: contact.Priority(r.URL.Query().Get("priority")),
		Search:   r.URL.Query().Get("search"),
	}
	if filter.Status != "" && !contact.ValidStatus(filter.Status) {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid status filter")
		return
	}
	if filter.Priority != "" && !contact.ValidPriority(filter.Priority) {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid priority filter")
		return
	}

	contacts, err := h.contacts.List(r.Context(), filter)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
		"total":    len(contacts),
	})
}

// GetContact handles GET /contacts/{contactID}
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")
	c, err := h.contacts.GetByID(r.Context(), id)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, c)
}

// CreateContact handles POST /contacts
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := req.toContact()
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.contacts.Create(r.Context(), c)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, created)
}

// UpdateContact handles PUT /contacts/{contactID}
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")

	var patch contact.Contact
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patch.Status != "" && !contact.ValidStatus(patch.Status) {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid status")
		return
	}
	if patch.Priority != "" && !contact.ValidPriority(patch.Priority) {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid priority")
		return
	}

	updated, err := h.contacts.Update(r.Context(), id, patch)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, updated)
}

// DeleteContact handles DELETE /contacts/{contactID}
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")
	if err := h.contacts.Delete(r.Context(), id); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// BulkStatusRequest is the payload for moving several contacts at once.
type BulkStatusRequest struct {
	ContactIDs []string `json:"contact_ids" validate:"required,min=1,max=200,dive,required"`
	Status     string   `json:"status" validate:"required,oneof=new contacted responded interested accepted declined"`
}

// BulkUpdateStatus handles POST /contacts/bulk-status
func (h *ContactHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req BulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	patch := contact.Contact{Status: contact.Status(req.Status)}
	updated := 0
	var failed []string
	for _, id := range req.ContactIDs {
		if _, err := h.contacts.Update(r.Context(), id, patch); err != nil {
			h.logger.Warn("Bulk status update failed for contact",
				zap.String("contactID", id),
				zap.Error(err),
			)
			failed = append(failed, id)
			continue
		}
		updated++
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"updated": updated,
		"failed":  failed,
	})
}

// Follower CSV uploads are capped well above any realistic export size.
const maxFollowerCSVBytes = 5 << 20

// BulkUpdateFollowers handles POST /contacts/bulk-followers. It accepts a
// CSV upload in the multipart field "file" and writes the parsed follower
// counts onto contacts matched by name. Column names default to "Name" and
// "Follower Count" and can be overridden with the name_column and
// follower_column form fields.
func (h *ContactHandler) BulkUpdateFollowers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFollowerCSVBytes); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	nameColumn := r.FormValue("name_column")
	if nameColumn == "" {
		nameColumn = "Name"
	}
	followerColumn := r.FormValue("follower_column")
	if followerColumn == "" {
		followerColumn = "Follower Count"
	}

	updates, err := contact.ParseFollowerCSV(file, nameColumn, followerColumn)
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	updated, notFound := 0, 0
	for _, u := range updates {
		n, err := h.contacts.SetFollowerCountByName(r.Context(), u.Name, u.Count)
		if err != nil {
			h.logger.Warn("Follower count update failed",
				zap.String("name", u.Name),
				zap.Error(err),
			)
			continue
		}
		if n == 0 {
			notFound++
		} else {
			updated += n
		}
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"updated":   updated,
		"not_found": notFound,
		"total":     len(updates),
	})
}

// ListCommunications handles GET /contacts/{contactID}/communications
func (h *ContactHandler) ListCommunications(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")
	comms, err := h.comms.ListByContact(r.Context(), id)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"communications": comms,
		"total":          len(comms),
	})
}

// CheckDuplicates handles POST /contacts/check-duplicates: it runs the
// incoming candidate against every stored contact and returns the scored
// matches without writing anything.
func (h *ContactHandler) CheckDuplicates(w http.ResponseWriter, r *http.Request) {
	var candidate contact.Contact
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if candidate.Name == "" && candidate.Email == "" {
		respondError(h.logger, w, http.StatusBadRequest, "Name or email is required")
		return
	}

	existing, err := h.contacts.List(r.Context(), ports.ContactFilter{})
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	matches := contact.FindDuplicates(candidate, existing)
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"stats":   contact.Stats(matches),
	})
}

func (req CreateContactRequest) toContact() (contact.Contact, error) {
	c := contact.Contact{
		Name:          req.Name,
		Email:         req.Email,
		TwitterHandle: req.TwitterHandle,
		Company:       req.Company,
		Phone:         req.Phone,
		Website:       req.Website,
		Status:        contact.Status(req.Status),
		Priority:      contact.Priority(req.Priority),
		Notes:         req.Notes,
		Tags:          req.Tags,
	}
	if c.Status == "" {
		c.Status = contact.StatusNew
	}
	if c.Priority == "" {
		c.Priority = contact.PriorityMedium
	}
	if req.NextFollowupDate != "" {
		t, err := utils.ParseRFC3339(req.NextFollowupDate)
		if err != nil {
			return contact.Contact{}, err
		}
		c.NextFollowupDate = &t
	}
	return c, nil
}
