// Match HTTP handlers.
//
// This file exposes REST endpoints for matches and their threads:
//   - POST /properties/{id}/match-roll      (legacy probabilistic match path)
//   - GET  /matches                         (role-scoped list, paginated, ETag)
//   - GET  /matches/{id}                    (fetch one)
//   - GET  /matches/{id}/messages           (list thread, paginated, ETag)
//   - POST /matches/{id}/messages           (send a message)
//   - POST /matches/{id}/messages/read      (clear the renter's unread state)
//   - POST /matches/{id}/viewing-preference (record viewing availability)
//   - POST /matches/{id}/viewing            (confirm a viewing datetime)
//   - POST /matches/{id}/tenancy            (tenancy transition)
//   - POST /matches/{id}/ratings            (one star rating per side)
//   - GET  /renters/me/unread               (total unread badge)
//
// Handlers are transport-thin:
//   - validate & normalize inputs (including newline and length constraints)
//   - delegate to application services (MatchService)
//   - implement conditional responses (ETag) and idempotency semantics
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/services"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/utils"
)

//
// DTOs
//

// MatchRollRequest is the JSON payload for the probabilistic match roll. The
// profile is optional; when present it is snapshotted onto any match created.
type MatchRollRequest struct {
	Profile *domain.RenterProfile `json:"profile,omitempty"`
}

// MatchRollResponse reports whether the roll produced a match.
type MatchRollResponse struct {
	Matched bool `json:"matched" example:"true"`
}

// ListMatchesResponse wraps a page of matches and pagination information.
type ListMatchesResponse struct {
	Matches    []domain.Match `json:"matches"`
	Pagination Pagination     `json:"pagination"`
}

// PostMatchMessageRequest is the JSON payload for sending a thread message.
//
// Content is normalized by the handler (line endings and excessive blank
// lines) before being passed to the service layer. The service also enforces
// a maximum rune count, which can be configured in MatchService.
type PostMatchMessageRequest struct {
	// Content is the message text. It must be non-empty.
	Content string `json:"content" binding:"required,min=1" example:"Is the flat still available from June?"`
}

// ListMatchMessagesResponse contains a page of thread messages and pagination
// metadata.
type ListMatchMessagesResponse struct {
	Messages   []domain.Message `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}

// ViewingPreferenceRequest is the JSON payload for recording the renter's
// viewing availability.
type ViewingPreferenceRequest struct {
	// Flexibility is a coarse availability mode, e.g. "weekday_evenings".
	Flexibility string   `json:"flexibility" example:"weekday_evenings"`
	Slots       []string `json:"slots,omitempty"`
	Notes       string   `json:"notes,omitempty" example:"after work only"`
}

// ConfirmViewingRequest is the JSON payload for confirming a viewing.
// Past datetimes are accepted (retroactive data entry).
type ConfirmViewingRequest struct {
	When time.Time `json:"when" binding:"required" example:"2026-05-01T14:00:00Z"`
}

// TenancyRequest is the JSON payload for a tenancy transition.
type TenancyRequest struct {
	// Status is the target tenancy state.
	Status string `json:"status" binding:"required,oneof=none active ended" example:"active"`
}

// SubmitRatingRequest is the JSON payload for rating the other party.
type SubmitRatingRequest struct {
	// Stars is the rating value (1..5).
	Stars   int    `json:"stars" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment,omitempty" example:"Responsive and fair throughout"`
}

// UnreadResponse carries the renter's total unread badge count.
type UnreadResponse struct {
	Unread int64 `json:"unread" example:"4"`
}

//
// Helpers
//

// clampMsgPagination parses page/page_size from query parameters, applies
// sane defaults and caps, and returns the validated (page, pageSize). Threads
// are read in bigger windows than resource lists, so the defaults are larger.
func clampMsgPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 50
		maxPageSize     = 200
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

// nlCollapseRE collapses runs of 3+ newlines to two, preserving paragraphs.
var nlCollapseRE = regexp.MustCompile(`\n{3,}`)

// sanitizeContent normalizes user text for consistent downstream behavior:
//   - converts CRLF/CR to LF,
//   - collapses runs of 3+ LFs to exactly two (paragraph separation),
//   - trims surrounding whitespace.
func sanitizeContent(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = nlCollapseRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// discoverMaxMessageRunes inspects the concrete MatchService for a configured
// message-length limit. If unavailable, it returns a conservative fallback.
func discoverMaxMessageRunes(matchSvc MatchService) int {
	const fallback = 2000
	if ms, okSvc := matchSvc.(*services.MatchService); okSvc {
		if ms.MaxMessageRunes > 0 {
			return ms.MaxMessageRunes
		}
	}
	return fallback
}

// raterRole maps the caller's platform role onto a rating side. Agencies act
// on the landlord's behalf and rate as the landlord side.
func raterRole(role domain.Role) domain.MessageSender {
	if role == domain.RoleLandlord || role == domain.RoleAgency {
		return domain.SenderLandlord
	}
	return domain.SenderRenter
}

//
// Handlers
//

// MatchRoll godoc
// @ID          matchRoll
// @Summary     Roll for a match (legacy)
// @Description Runs the probabilistic demo path: with the configured probability, seeds a match
// @Description between the current renter and the property's landlord. Missing or unclaimed
// @Description properties never match. Production matches come from interest confirmation instead.
// @Tags        Matches
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Renter ID (demo header)"  example(renter-1)
// @Param       id         path    string  true  "Property ID (UUID)"       format(uuid)
// @Param       body       body    handlers.MatchRollRequest  false  "Optional renter profile"
//
// @Success     200  {object}  handlers.MatchRollResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /properties/{id}/match-roll [post]
func (h *Handlers) MatchRoll(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "property id must be a UUID")
		return
	}

	// Body is optional on this endpoint.
	var req MatchRollRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.Profile != nil && strings.TrimSpace(req.Profile.Name) == "" {
		req.Profile.Name = userName(c)
	}

	matched, err := h.matchSvc.CheckForMatch(c.Request.Context(), propertyID, userID(c), req.Profile)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, MatchRollResponse{Matched: matched})
}

// ListMatches godoc
// @ID          listMatches
// @Summary     List matches (paginated)
// @Description Returns the caller's matches, most recent activity first. Renters see their side;
// @Description landlords (and agencies) see theirs, chosen by X-User-Role. Supports weak ETag via
// @Description If-None-Match and may return 304.
// @Tags        Matches
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(renter-1)
// @Param       X-User-Role    header  string  false "renter, landlord or agency"  example(renter)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListMatchesResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /matches [get]
func (h *Handlers) ListMatches(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	column := "renter_id"
	if role := userRole(c); role == domain.RoleLandlord || role == domain.RoleAgency {
		column = "landlord_id"
	}

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okSvc := h.matchSvc.(*services.MatchService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.MatchesStats(ctx, db, column, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"matches:%s:%s:%d:%d"`, column, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	var (
		items []domain.Match
		total int64
		err   error
	)
	if column == "landlord_id" {
		items, total, err = h.matchSvc.ListForLandlord(ctx, uid, page, pageSize)
	} else {
		items, total, err = h.matchSvc.ListForRenter(ctx, uid, page, pageSize)
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListMatchesResponse{
		Matches: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetMatch godoc
// @ID          getMatch
// @Summary     Fetch a match
// @Description Returns a single match by ID, including the property snapshot and renter profile.
// @Tags        Matches
// @Produce     json
//
// @Param       id  path  string  true  "Match ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Match
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Match not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /matches/{id} [get]
func (h *Handlers) GetMatch(c *gin.Context) {
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a UUID")
		return
	}

	m, err := h.matchSvc.Get(c.Request.Context(), matchID)
	if err != nil {
		switch err {
		case services.ErrMatchNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, m)
}

// ListMatchMessages godoc
// @ID          listMatchMessages
// @Summary     List messages in a match
// @Description Returns a paginated page of the thread in stable order. Internal notes are
// @Description filtered out unless include_internal=1. Supports weak ETag and may return 304.
// @Tags        Messages
// @Produce     json
//
// @Param       id                path   string  true  "Match ID (UUID)"  format(uuid)
// @Param       include_internal  query  string  false "Set to 1 to include internal notes"
// @Param       page              query  int     false "Page number"      minimum(1) default(1)
// @Param       page_size         query  int     false "Items per page"   minimum(1) maximum(200) default(50)
//
// @Success     200  {object} handlers.ListMatchMessagesResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Match not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /matches/{id}/messages [get]
func (h *Handlers) ListMatchMessages(c *gin.Context) {
	ctx := c.Request.Context()
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a UUID")
		return
	}

	incInternal := c.Query("include_internal") == "1" ||
		strings.EqualFold(c.Query("include_internal"), "true")

	// ETag pre-check (best effort). The flag is part of the tag because the
	// two views of one thread are different representations.
	var db *gorm.DB
	if svc, okSvc := h.matchSvc.(*services.MatchService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.MessagesStats(ctx, db, matchID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"messages:%s:%d:%d:%t"`, matchID, count, ts, incInternal)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	page, pageSize := clampMsgPagination(c)

	items, total, err := h.matchSvc.ListMessages(ctx, matchID, incInternal, page, pageSize)
	if err != nil {
		switch err {
		case services.ErrMatchNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		}
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListMatchMessagesResponse{
		Messages: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// PostMatchMessage godoc
// @ID          postMatchMessage
// @Summary     Send a message in a match
// @Description Appends a message to the thread. The sender side is derived from the match parties:
// @Description the match's renter posts as renter, anyone else as the landlord side. Sends into a
// @Description match that has been deleted are dropped without error (the thread is gone).
// @Description Supports idempotency via the Idempotency-Key header (same key acknowledges once).
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "Sender ID (demo header)"  example(renter-1)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"
// @Param       id               path    string  true  "Match ID (UUID)"          format(uuid)
// @Param       body             body    handlers.PostMatchMessageRequest  true  "Message payload"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /matches/{id}/messages [post]
func (h *Handlers) PostMatchMessage(c *gin.Context) {
	ctx := c.Request.Context()
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a UUID")
		return
	}

	var req PostMatchMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	// Sanitize + early size cap to fail fast at the edge.
	content := sanitizeContent(req.Content)
	maxRunes := discoverMaxMessageRunes(h.matchSvc)
	if maxRunes > 0 && utf8.RuneCountInString(content) > maxRunes {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("content too long: max %d runes", maxRunes))
		return
	}
	if content == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	currentUser := userID(c)

	var db *gorm.DB
	if svc, okSvc := h.matchSvc.(*services.MatchService); okSvc {
		db = svc.DB
	}

	// Idempotency (replay path) – a recorded key means the send already
	// happened; acknowledge again without appending a duplicate.
	idemKey, _ := idempotencyKey(c)
	if idemKey != "" && db != nil {
		if rec, err := repo.GetIdempotency(ctx, db, currentUser, matchID, idemKey, time.Now().UTC()); err == nil && rec != nil {
			c.Header("Idempotency-Replayed", "true")
			noContent(c)
			return
		}
	}

	if err := h.matchSvc.SendMessage(ctx, matchID, currentUser, content); err != nil {
		switch err {
		case services.ErrEmptyMessage:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		case services.ErrMessageTooLong:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("content too long: max %d runes", maxRunes))
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && db != nil {
		_, _ = repo.CreateIdempotency(ctx, db, currentUser, matchID, idemKey, matchID, http.StatusNoContent, h.idemTTL())
	}
	noContent(c)
}

// ReadMatchMessages godoc
// @ID          readMatchMessages
// @Summary     Mark a thread read
// @Description Marks every unread counterparty message in the match as read and clears the
// @Description renter's unread badge for it.
// @Tags        Messages
// @Produce     json
//
// @Param       id  path  string  true  "Match ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Match not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /matches/{id}/messages/read [post]
func (h *Handlers) ReadMatchMessages(c *gin.Context) {
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a UUID")
		return
	}

	if err := h.matchSvc.MarkMessagesRead(c.Request.Context(), matchID); err != nil {
		switch err {
		case services.ErrMatchNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// SetViewing godoc
// @ID          setViewingPreference
// @Summary     Record viewing availability
// @Description Stores the renter's viewing preference on the match and posts a system summary
// @Description message into the thread so both sides see the request in context.
// @Tags        Viewings
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Match ID (UUID)"  format(uuid)
// @Param       body  body  handlers.ViewingPreferenceRequest  true  "Viewing preference payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Match not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /matches/{id}/viewing-preference [post]
func (h *Handlers) SetViewing(c *gin.Context) {
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a UUID")
		return
	}

	var req ViewingPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	pref := domain.ViewingPreference{
		Flexibility: req.Flexibility,
		Slots:       req.Slots,
		Notes:       req.Notes,
	}
	if err := h.matchSvc.SetViewingPreference(c.Request.Context(), matchID, pref); err != nil {
		switch err {
		case services.ErrMatchNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// ConfirmMatchViewing godoc
// @ID          confirmViewing
// @Summary     Confirm a viewing
// @Description Records the agreed viewing datetime on the match. No prior preference is required;
// @Description past datetimes are accepted for retroactive entry.
// @Tags        Viewings
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Match ID (UUID)"  format(uuid)
// @Param       body  body  handlers.ConfirmViewingRequest  true  "Confirmed datetime"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Match not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /matches/{id}/viewing [post]
func (h *Handlers) ConfirmMatchViewing(c *gin.Context) {
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a UUID")
		return
	}

	var req ConfirmViewingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.When.IsZero() {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "when required (RFC 3339 datetime)")
		return
	}

	if err := h.matchSvc.ConfirmViewing(c.Request.Context(), matchID, req.When); err != nil {
		switch err {
		case services.ErrMatchNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// SetTenancy godoc
// @ID          setTenancy
// @Summary     Transition tenancy state
// @Description Moves the match's tenancy state (none, active, ended). Entering active or ended
// @Description unlocks rating for both sides.
// @Tags        Tenancies
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Match ID (UUID)"  format(uuid)
// @Param       body  body  handlers.TenancyRequest  true  "Target tenancy state"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Match not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /matches/{id}/tenancy [post]
func (h *Handlers) SetTenancy(c *gin.Context) {
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a UUID")
		return
	}

	var req TenancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be none, active or ended")
		return
	}

	if err := h.matchSvc.SetTenancyStatus(c.Request.Context(), matchID, domain.TenancyStatus(req.Status)); err != nil {
		switch err {
		case services.ErrMatchNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
		case services.ErrInvalidTenancyStatus:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be none, active or ended")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// RateMatch godoc
// @ID          rateMatch
// @Summary     Rate the other party
// @Description Records a 1-5 star rating for the match from the caller's side (renter, or
// @Description landlord/agency as the landlord side). Each side rates at most once.
// @Tags        Ratings
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID    header  string  false "Rater ID (demo header)"       example(renter-1)
// @Param       X-User-Role  header  string  false "renter, landlord or agency"   example(renter)
// @Param       id           path    string  true  "Match ID (UUID)"              format(uuid)
// @Param       body         body    handlers.SubmitRatingRequest  true  "Rating payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid rating"
// @Failure     404  {object} handlers.ErrorResponse "Match not found"
// @Failure     409  {object} handlers.ErrorResponse "Side already rated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /matches/{id}/ratings [post]
func (h *Handlers) RateMatch(c *gin.Context) {
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "match id must be a UUID")
		return
	}

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "stars must be between 1 and 5")
		return
	}

	in := services.RatingInput{
		MatchID:   matchID,
		RaterID:   userID(c),
		RaterRole: raterRole(userRole(c)),
		Stars:     req.Stars,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := h.matchSvc.SubmitRating(c.Request.Context(), in); err != nil {
		switch err {
		case services.ErrMatchNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
		case services.ErrInvalidRating:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "stars must be between 1 and 5")
		case services.ErrAlreadyRated:
			fail(c, http.StatusConflict, ErrCodeConflict, "rating already submitted for this match")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// UnreadBadge godoc
// @ID          unreadBadge
// @Summary     Total unread count
// @Description Returns the renter's unread message total across all their matches,
// @Description for app badge display.
// @Tags        Matches
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Renter ID (demo header)"  example(renter-1)
//
// @Success     200  {object} handlers.UnreadResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /renters/me/unread [get]
func (h *Handlers) UnreadBadge(c *gin.Context) {
	n, err := h.matchSvc.UnreadTotal(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, UnreadResponse{Unread: n})
}
