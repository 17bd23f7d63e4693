// Interest HTTP handlers.
//
// This file exposes REST endpoints for the interest ledger:
//   - POST /properties/{id}/interest      (renter expresses interest)
//   - GET  /landlords/me/interests        (pending queue, paginated, ETag)
//   - GET  /landlords/me/interests/count  (badge count)
//   - POST /interests/{id}/confirm        (landlord confirms, creating a match)
//   - POST /interests/{id}/decline        (landlord passes)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
//
// Idempotency:
// If the client supplies an Idempotency-Key header on the express endpoint and
// a previous result exists for (user, property, key), the handler replays the
// recorded outcome and sets `Idempotency-Replayed: true`.
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/http/middleware"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/services"
)

//
// DTOs
//

// ExpressInterestRequest is the JSON payload for a renter expressing interest
// in a property. The profile travels with the interest so landlords review
// the renter as they presented at swipe time.
type ExpressInterestRequest struct {
	Profile domain.RenterProfile `json:"profile"`
}

// ExpressInterestResponse wraps the recorded interest.
type ExpressInterestResponse struct {
	Interest *domain.Interest `json:"interest"`
}

// ListInterestsResponse wraps a page of pending interests and pagination
// information.
type ListInterestsResponse struct {
	Interests  []domain.Interest `json:"interests"`
	Pagination Pagination        `json:"pagination"`
}

// InterestCountResponse carries the landlord's pending badge count.
type InterestCountResponse struct {
	Count int64 `json:"count" example:"3"`
}

//
// Helpers
//

// idempotencyKey returns the validated key stashed by the idempotency
// middleware, falling back to the raw header when the route runs without it.
func idempotencyKey(c *gin.Context) (string, bool) {
	if k, okKey := middleware.GetIdempotencyKey(c); okKey {
		return k, true
	}
	if v := strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey)); v != "" {
		return v, true
	}
	return "", false
}

//
// Handlers
//

// ExpressInterest godoc
// @ID          expressInterest
// @Summary     Express interest in a property
// @Description Records the renter's interest (right swipe) with a profile snapshot and compatibility
// @Description score. Repeats against a live or reviewed pairing return the existing record. A missing
// @Description or unclaimed property yields 204: nothing to queue, nothing to retry.
// @Description Supports idempotency via the Idempotency-Key header (same key replays the same result).
// @Tags        Interests
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "Renter ID (demo header)"  example(renter-1)
// @Param       X-User-Name      header  string  false "Renter display name"      example(Rita Okafor)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"
// @Param       id               path    string  true  "Property ID (UUID)"       format(uuid)
// @Param       body             body    handlers.ExpressInterestRequest  true  "Renter profile payload"
//
// @Success     200  {object}  handlers.ExpressInterestResponse  "Existing record (repeat or replay)"
// @Success     201  {object}  handlers.ExpressInterestResponse  "Interest recorded"
// @Success     204  {string}  string  "Property missing or unclaimed"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /properties/{id}/interest [post]
func (h *Handlers) ExpressInterest(c *gin.Context) {
	ctx := c.Request.Context()
	propertyID := c.Param("id")

	if _, err := uuid.Parse(propertyID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "property id must be a UUID")
		return
	}

	var req ExpressInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	currentUser := userID(c)
	profile := req.Profile
	if strings.TrimSpace(profile.Name) == "" {
		profile.Name = userName(c)
	}

	var db *gorm.DB
	if svc, okSvc := h.intSvc.(*services.InterestService); okSvc {
		db = svc.DB
	}

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := idempotencyKey(c)
	if idemKey != "" && db != nil {
		if rec, err := repo.GetIdempotency(ctx, db, currentUser, propertyID, idemKey, time.Now().UTC()); err == nil && rec != nil {
			if rec.ResultID == "" {
				c.Header("Idempotency-Replayed", "true")
				noContent(c)
				return
			}
			if prev, err2 := repo.GetInterest(ctx, db, rec.ResultID); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, ExpressInterestResponse{Interest: prev})
				return
			}
		}
	}

	iv, err := h.intSvc.Express(ctx, propertyID, currentUser, profile)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	// Missing or unclaimed property: a business no-op, not an error.
	if iv == nil {
		if idemKey != "" && db != nil {
			_, _ = repo.CreateIdempotency(ctx, db, currentUser, propertyID, idemKey, "", http.StatusNoContent, h.idemTTL())
		}
		noContent(c)
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && db != nil {
		_, _ = repo.CreateIdempotency(ctx, db, currentUser, propertyID, idemKey, iv.ID, http.StatusCreated, h.idemTTL())
	}
	ok(c, http.StatusCreated, ExpressInterestResponse{Interest: iv})
}

// ListInterests godoc
// @ID          listInterests
// @Summary     List pending interests (landlord queue)
// @Description Returns the current landlord's live pending interests, oldest first, so renters are
// @Description reviewed in arrival order. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Interests
// @Produce     json
//
// @Param       X-User-ID      header  string  false "Landlord ID (demo header)"    example(landlord-1)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"   example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                   minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"                minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListInterestsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /landlords/me/interests [get]
func (h *Handlers) ListInterests(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okSvc := h.intSvc.(*services.InterestService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.InterestsStats(ctx, db, uid, time.Now().UTC())
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"interests:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.intSvc.ListPending(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListInterestsResponse{
		Interests: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// CountInterests godoc
// @ID          countInterests
// @Summary     Count pending interests
// @Description Returns the landlord's live pending-queue size for badge display.
// @Tags        Interests
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Landlord ID (demo header)"  example(landlord-1)
//
// @Success     200  {object} handlers.InterestCountResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /landlords/me/interests/count [get]
func (h *Handlers) CountInterests(c *gin.Context) {
	n, err := h.intSvc.PendingCount(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, InterestCountResponse{Count: n})
}

// ConfirmInterest godoc
// @ID          confirmInterest
// @Summary     Confirm an interest
// @Description Accepts a pending interest and creates the match, seeding its thread with a landlord
// @Description welcome message. Closed interests (reviewed, expired, orphaned, or on a property that
// @Description is gone or unclaimed) conflict rather than silently failing.
// @Tags        Interests
// @Produce     json
//
// @Param       X-User-ID    header  string  false "Landlord ID (demo header)"      example(landlord-1)
// @Param       X-User-Name  header  string  false "Landlord display name"          example(Sarah Chen)
// @Param       id           path    string  true  "Interest ID (UUID)"             format(uuid)
//
// @Success     201  {object} domain.Match
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Interest not found"
// @Failure     409  {object} handlers.ErrorResponse "Interest no longer actionable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /interests/{id}/confirm [post]
func (h *Handlers) ConfirmInterest(c *gin.Context) {
	interestID := c.Param("id")
	if _, err := uuid.Parse(interestID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "interest id must be a UUID")
		return
	}

	m, err := h.matchSvc.Confirm(c.Request.Context(), interestID, userName(c))
	if err != nil {
		switch err {
		case services.ErrInterestNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "interest not found")
		case services.ErrInterestClosed:
			fail(c, http.StatusConflict, ErrCodeConflict, "interest no longer actionable")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, m)
}

// DeclineInterest godoc
// @ID          declineInterest
// @Summary     Decline an interest
// @Description Marks a pending interest as passed. Declining is terminal: the pairing stays closed
// @Description and later swipes by the same renter return the reviewed record.
// @Tags        Interests
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Landlord ID (demo header)"  example(landlord-1)
// @Param       id         path    string  true  "Interest ID (UUID)"         format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Interest not found"
// @Failure     409  {object} handlers.ErrorResponse "Interest no longer actionable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /interests/{id}/decline [post]
func (h *Handlers) DeclineInterest(c *gin.Context) {
	interestID := c.Param("id")
	if _, err := uuid.Parse(interestID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "interest id must be a UUID")
		return
	}

	if err := h.intSvc.Decline(c.Request.Context(), interestID); err != nil {
		switch err {
		case services.ErrInterestNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "interest not found")
		case services.ErrInterestClosed:
			fail(c, http.StatusConflict, ErrCodeConflict, "interest no longer actionable")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
