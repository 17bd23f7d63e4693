// Property HTTP handlers.
//
// This file exposes REST endpoints for property listings:
//   - POST   /properties                 (create)
//   - GET    /properties                 (browse feed, or ?mine=1 portfolio)
//   - GET    /properties/{id}            (fetch one)
//   - PATCH  /properties/{id}            (partial update; ownership stripped)
//   - DELETE /properties/{id}            (delete with dependant cascade)
//   - POST   /properties/{id}/link       (landlord claims or relinks)
//   - POST   /properties/{id}/unlink     (landlord releases)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/services"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/utils"
)

//
// Service contracts (context-aware)
//

// RegistryService defines property lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RegistryService interface {
	// Create inserts a new listing owned by landlordID.
	Create(ctx context.Context, in services.PropertyInput, landlordID string) (*domain.Property, error)
	// Get fetches a property by ID.
	Get(ctx context.Context, id string) (*domain.Property, error)
	// ListAvailable returns a page of the renter's browse feed and the total.
	ListAvailable(ctx context.Context, renterID string, page, pageSize int) ([]domain.Property, int64, error)
	// ListByLandlord returns a page of a landlord's portfolio and the total.
	ListByLandlord(ctx context.Context, landlordID string, page, pageSize int) ([]domain.Property, int64, error)
	// Update applies a partial update; ownership changes are stripped.
	Update(ctx context.Context, id string, upd services.PropertyUpdate) (*services.CascadeResult, error)
	// Delete removes a property after cascading through its dependants.
	Delete(ctx context.Context, id string) (*services.CascadeResult, error)
	// Link claims the property for landlordID and re-points dependants.
	Link(ctx context.Context, id, landlordID, landlordName string) (*services.CascadeResult, error)
	// Unlink releases the property if landlordID currently owns it.
	Unlink(ctx context.Context, id, landlordID string) error
}

// InterestService defines interest ledger operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type InterestService interface {
	// Express records a renter's interest in a property. A nil interest with
	// a nil error means the property was missing or unclaimed (a no-op).
	Express(ctx context.Context, propertyID, renterID string, profile domain.RenterProfile) (*domain.Interest, error)
	// PendingCount returns the landlord's live pending-queue size.
	PendingCount(ctx context.Context, landlordID string) (int64, error)
	// ListPending returns a page of the landlord's pending queue and the total.
	ListPending(ctx context.Context, landlordID string, page, pageSize int) ([]domain.Interest, int64, error)
	// Decline marks a pending interest as passed.
	Decline(ctx context.Context, interestID string) error
}

// MatchService defines match, messaging, viewing, tenancy, and rating
// operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MatchService interface {
	// Confirm converts a pending interest into a match.
	Confirm(ctx context.Context, interestID, landlordName string) (*domain.Match, error)
	// CheckForMatch runs the legacy probabilistic match roll.
	CheckForMatch(ctx context.Context, propertyID, renterID string, profile *domain.RenterProfile) (bool, error)
	// Get fetches a match by ID.
	Get(ctx context.Context, id string) (*domain.Match, error)
	// ListForRenter returns a page of the renter's matches and the total.
	ListForRenter(ctx context.Context, renterID string, page, pageSize int) ([]domain.Match, int64, error)
	// ListForLandlord returns a page of the landlord's matches and the total.
	ListForLandlord(ctx context.Context, landlordID string, page, pageSize int) ([]domain.Match, int64, error)
	// SendMessage appends a message to the match thread.
	SendMessage(ctx context.Context, matchID, senderID, content string) error
	// MarkMessagesRead clears the renter's unread state for a match.
	MarkMessagesRead(ctx context.Context, matchID string) error
	// ListMessages returns a page of a match's thread and the total.
	ListMessages(ctx context.Context, matchID string, includeInternal bool, page, pageSize int) ([]domain.Message, int64, error)
	// SetViewingPreference records the renter's viewing availability.
	SetViewingPreference(ctx context.Context, matchID string, pref domain.ViewingPreference) error
	// ConfirmViewing records a confirmed viewing datetime.
	ConfirmViewing(ctx context.Context, matchID string, when time.Time) error
	// SetTenancyStatus transitions the match's tenancy state.
	SetTenancyStatus(ctx context.Context, matchID string, status domain.TenancyStatus) error
	// SubmitRating records a one-per-side star rating.
	SubmitRating(ctx context.Context, in services.RatingInput) error
	// UnreadTotal returns the renter's unread badge aggregate.
	UnreadTotal(ctx context.Context, renterID string) (int64, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for properties, interests, and matches.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	regSvc   RegistryService
	intSvc   InterestService
	matchSvc MatchService

	// IdemTTL bounds how long recorded idempotent results replay.
	// Zero means the 24h default.
	IdemTTL time.Duration
}

// New constructs and returns a Handlers instance bound to the given services.
func New(regSvc RegistryService, intSvc InterestService, matchSvc MatchService) *Handlers {
	return &Handlers{regSvc: regSvc, intSvc: intSvc, matchSvc: matchSvc}
}

// idemTTL returns the configured idempotency record lifetime.
func (h *Handlers) idemTTL() time.Duration {
	if h.IdemTTL > 0 {
		return h.IdemTTL
	}
	return 24 * time.Hour
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// userRole reads the caller's declared role from Gin context or the
// "X-User-Role" header. Unknown or missing values default to renter, the
// least privileged role.
func userRole(c *gin.Context) domain.Role {
	v := ""
	if got, ok := c.Get("userRole"); ok {
		if s, ok := got.(string); ok {
			v = s
		}
	}
	if v == "" && c != nil && c.Request != nil {
		v = c.GetHeader("X-User-Role")
	}
	switch domain.Role(strings.ToLower(strings.TrimSpace(v))) {
	case domain.RoleLandlord:
		return domain.RoleLandlord
	case domain.RoleAgency:
		return domain.RoleAgency
	default:
		return domain.RoleRenter
	}
}

// userName reads the caller's display name from the "X-User-Name" header.
// Empty means the caller supplied none; services leave stored display names
// untouched in that case.
func userName(c *gin.Context) string {
	if c != nil && c.Request != nil {
		return strings.TrimSpace(c.GetHeader("X-User-Name"))
	}
	return ""
}

//
// DTOs
//

// CreatePropertyRequest is the JSON payload for creating a listing.
type CreatePropertyRequest struct {
	AddressLine   string     `json:"address_line" binding:"required,min=1,max=255" example:"14 Birch Grove"`
	City          string     `json:"city" binding:"required,min=1,max=100" example:"Manchester"`
	Postcode      string     `json:"postcode" example:"M20 4WX"`
	Rent          int        `json:"rent" binding:"min=0" example:"1250"`
	Bedrooms      int        `json:"bedrooms" binding:"min=0" example:"2"`
	Bathrooms     int        `json:"bathrooms" binding:"min=0" example:"1"`
	PropertyType  string     `json:"property_type" example:"flat"`
	Furnished     bool       `json:"furnished" example:"true"`
	Available     bool       `json:"available" example:"true"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Features      []string   `json:"features,omitempty"`
}

// UpdatePropertyRequest is the JSON payload for a partial listing update.
// Absent fields are left untouched. landlord_id is accepted so the strip
// guard can log attempted ownership changes, but it is never applied;
// ownership only moves through the link and unlink endpoints.
type UpdatePropertyRequest struct {
	LandlordID    *string    `json:"landlord_id,omitempty" example:"landlord-7"`
	AddressLine   *string    `json:"address_line,omitempty"`
	City          *string    `json:"city,omitempty"`
	Postcode      *string    `json:"postcode,omitempty"`
	Rent          *int       `json:"rent,omitempty"`
	Bedrooms      *int       `json:"bedrooms,omitempty"`
	Bathrooms     *int       `json:"bathrooms,omitempty"`
	PropertyType  *string    `json:"property_type,omitempty"`
	Furnished     *bool      `json:"furnished,omitempty"`
	Available     *bool      `json:"available,omitempty"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Features      []string   `json:"features,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListPropertiesResponse wraps a page of properties and pagination information.
type ListPropertiesResponse struct {
	Properties []domain.Property `json:"properties"`
	Pagination Pagination        `json:"pagination"`
}

// CascadeSummary reports what a consistency cascade touched, so clients can
// see how many dependant rows a mutation rewrote and whether any step failed
// (failed steps are retryable by repeating the request).
type CascadeSummary struct {
	Scanned int `json:"scanned" example:"3"`
	Updated int `json:"updated" example:"4"`
	Deleted int `json:"deleted" example:"0"`
	Failed  int `json:"failed"  example:"0"`
}

// CascadeResponse is the envelope for mutations whose visible outcome is the
// cascade itself (update, delete, link).
type CascadeResponse struct {
	Cascade CascadeSummary `json:"cascade"`
}

// cascadeSummary flattens a service-level cascade result for the wire.
func cascadeSummary(res *services.CascadeResult) CascadeSummary {
	if res == nil {
		return CascadeSummary{}
	}
	return CascadeSummary{
		Scanned: res.Scanned,
		Updated: res.Updated,
		Deleted: res.Deleted,
		Failed:  res.Failed,
	}
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// CreateProperty godoc
// @ID          createProperty
// @Summary     Create a property listing
// @Description Creates a listing owned by the current landlord and returns the property resource.
// @Tags        Properties
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Landlord ID (demo header)"  example(landlord-1)
// @Param       body       body    handlers.CreatePropertyRequest  true  "Create listing payload"
//
// @Success     201  {object}  domain.Property
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /properties [post]
func (h *Handlers) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	in := services.PropertyInput{
		AddressLine:   strings.TrimSpace(req.AddressLine),
		City:          strings.TrimSpace(req.City),
		Postcode:      strings.TrimSpace(req.Postcode),
		Rent:          req.Rent,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		PropertyType:  req.PropertyType,
		Furnished:     req.Furnished,
		Available:     req.Available,
		AvailableFrom: req.AvailableFrom,
		Images:        req.Images,
		Features:      req.Features,
	}

	p, err := h.regSvc.Create(c.Request.Context(), in, userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, p)
}

// ListProperties godoc
// @ID          listProperties
// @Summary     List properties (paginated)
// @Description Returns the renter browse feed: available, claimed listings the renter has no live interest in.
// @Description With ?mine=1 it instead returns the caller's own portfolio (ETag supported, may return 304).
// @Tags        Properties
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(renter-1)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       mine           query   string  false "Set to 1 for the caller's own listings"
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListPropertiesResponse
// @Header      200  {string} ETag  "Weak ETag for current result (portfolio view)"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /properties [get]
func (h *Handlers) ListProperties(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	if mine := c.Query("mine"); mine == "1" || strings.EqualFold(mine, "true") {
		// ETag pre-check (best effort). The browse feed below is scored per
		// renter against live interests, so only the portfolio view gets one.
		var db *gorm.DB
		if svc, okSvc := h.regSvc.(*services.RegistryService); okSvc {
			db = svc.DB
		}
		if db != nil {
			count, maxTS, err := repo.PropertiesStats(ctx, db, uid)
			if err == nil {
				var ts int64
				if maxTS != nil {
					ts = maxTS.Unix()
				}
				etag := fmt.Sprintf(`W/"properties:%s:%d:%d"`, uid, count, ts)
				c.Header("ETag", etag)
				if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
					c.Status(http.StatusNotModified)
					return
				}
			}
		}

		items, total, err := h.regSvc.ListByLandlord(ctx, uid, page, pageSize)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		ok(c, http.StatusOK, propertiesPage(items, total, page, pageSize))
		return
	}

	items, total, err := h.regSvc.ListAvailable(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, propertiesPage(items, total, page, pageSize))
}

// propertiesPage assembles the list envelope shared by both property views.
func propertiesPage(items []domain.Property, total int64, page, pageSize int) ListPropertiesResponse {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return ListPropertiesResponse{
		Properties: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
}

// GetProperty godoc
// @ID          getProperty
// @Summary     Fetch a property
// @Description Returns a single property by ID.
// @Tags        Properties
// @Produce     json
//
// @Param       id  path  string  true  "Property ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Property
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Property not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /properties/{id} [get]
func (h *Handlers) GetProperty(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "property id must be a UUID")
		return
	}

	p, err := h.regSvc.Get(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrPropertyNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "property not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateProperty godoc
// @ID          updateProperty
// @Summary     Update a property (partial)
// @Description Applies the supplied fields to the listing. Ownership fields are stripped, never applied.
// @Description Snapshot-bearing matches are refreshed; the cascade summary reports what was touched.
// @Tags        Properties
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Property ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdatePropertyRequest  true  "Partial update payload"
//
// @Success     200  {object} handlers.CascadeResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Property not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /properties/{id} [patch]
func (h *Handlers) UpdateProperty(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "property id must be a UUID")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	upd := services.PropertyUpdate{
		LandlordID:    req.LandlordID,
		AddressLine:   req.AddressLine,
		City:          req.City,
		Postcode:      req.Postcode,
		Rent:          req.Rent,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		PropertyType:  req.PropertyType,
		Furnished:     req.Furnished,
		Available:     req.Available,
		AvailableFrom: req.AvailableFrom,
		Images:        req.Images,
		Features:      req.Features,
	}

	res, err := h.regSvc.Update(c.Request.Context(), id, upd)
	if err != nil {
		switch err {
		case services.ErrPropertyNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "property not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, CascadeResponse{Cascade: cascadeSummary(res)})
}

// DeleteProperty godoc
// @ID          deleteProperty
// @Summary     Delete a property
// @Description Deletes the listing after cascading through its matches (threads and ratings go with them)
// @Description and orphaning surviving interests. The property row is only removed once every cascade
// @Description step succeeded; on partial failure the request is safe to retry.
// @Tags        Properties
// @Produce     json
//
// @Param       id  path  string  true  "Property ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.CascadeResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Property not found"
// @Failure     500  {object} handlers.ErrorResponse "Cascade incomplete or internal error"
// @Router      /properties/{id} [delete]
func (h *Handlers) DeleteProperty(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "property id must be a UUID")
		return
	}

	res, err := h.regSvc.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case err == services.ErrPropertyNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "property not found")
		case res != nil && res.Failed > 0:
			fail(c, http.StatusInternalServerError, ErrCodeCascadeFailed, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, CascadeResponse{Cascade: cascadeSummary(res)})
}

// LinkProperty godoc
// @ID          linkProperty
// @Summary     Claim a property
// @Description Links the property to the current landlord. Idempotent for the owning landlord;
// @Description conflicts if another landlord holds the listing. On success existing matches and
// @Description live interests are re-pointed at the new owner (see cascade summary).
// @Tags        Properties
// @Produce     json
//
// @Param       X-User-ID    header  string  false "Landlord ID (demo header)"       example(landlord-1)
// @Param       X-User-Name  header  string  false "Display name for rewritten rows" example(Sarah Chen)
// @Param       id           path    string  true  "Property ID (UUID)"              format(uuid)
//
// @Success     200  {object} handlers.CascadeResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Property not found"
// @Failure     409  {object} handlers.ErrorResponse "Claimed by another landlord"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /properties/{id}/link [post]
func (h *Handlers) LinkProperty(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "property id must be a UUID")
		return
	}

	res, err := h.regSvc.Link(c.Request.Context(), id, userID(c), userName(c))
	if err != nil {
		switch err {
		case services.ErrPropertyNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "property not found")
		case services.ErrOwnershipConflict:
			fail(c, http.StatusConflict, ErrCodeConflict, "property already claimed by another landlord")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, CascadeResponse{Cascade: cascadeSummary(res)})
}

// UnlinkProperty godoc
// @ID          unlinkProperty
// @Summary     Release a property
// @Description Unlinks the property from the current landlord. Historical matches keep their
// @Description attribution; live interests are detached until a future relink.
// @Tags        Properties
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Landlord ID (demo header)"  example(landlord-1)
// @Param       id         path    string  true  "Property ID (UUID)"         format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Not the current owner"
// @Failure     404  {object} handlers.ErrorResponse "Property not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /properties/{id}/unlink [post]
func (h *Handlers) UnlinkProperty(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "property id must be a UUID")
		return
	}

	if err := h.regSvc.Unlink(c.Request.Context(), id, userID(c)); err != nil {
		switch err {
		case services.ErrPropertyNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "property not found")
		case services.ErrOwnershipMismatch:
			fail(c, http.StatusForbidden, ErrCodeForbidden, "property not owned by this landlord")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
