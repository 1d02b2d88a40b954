package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"conferenceapi/internal/model"
	"conferenceapi/internal/service"
)

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseInput decodes and validates a ConferenceInput body.
func parseInput(c *fiber.Ctx) (model.ConferenceInput, error) {
	var in model.ConferenceInput
	if err := c.BodyParser(&in); err != nil {
		return in, fmt.Errorf("%w: malformed request body", model.ErrInvalidInput)
	}
	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}

// ListConferences godoc
// @Summary List conferences
// @Tags conferences
// @Produce json
// @Success 200 {array} model.ConferenceView
// @Failure 502 {object} errorPayload
// @Router /conferences [get]
func ListConferences(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetConference godoc
// @Summary Get a conference with its keynote speaker
// @Tags conferences
// @Produce json
// @Param id path int true "Conference ID"
// @Success 200 {object} model.ConferenceView
// @Failure 404 {object} errorPayload
// @Router /conferences/{id} [get]
func GetConference(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListReviews godoc
// @Summary List the reviews of a conference
// @Tags reviews
// @Produce json
// @Param id path int true "Conference ID"
// @Success 200 {array} model.ReviewView
// @Failure 404 {object} errorPayload
// @Router /conferences/{id}/reviews [get]
func ListReviews(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.ListReviews(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateConference godoc
// @Summary Create a conference
// @Tags conferences
// @Accept json
// @Param body body model.ConferenceInput true "Conference"
// @Success 204
// @Header 204 {string} Location "/conferences/{id}"
// @Failure 400 {object} errorPayload
// @Router /conferences [post]
func CreateConference(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := parseInput(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		id, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Location(fmt.Sprintf("/conferences/%d", id))
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ReplaceConference godoc
// @Summary Replace a conference and all of its reviews
// @Tags conferences
// @Accept json
// @Param id path int true "Conference ID"
// @Param body body model.ConferenceInput true "Conference"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /conferences/{id} [put]
func ReplaceConference(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		in, err := parseInput(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := svc.Replace(c.UserContext(), id, in); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PatchConference godoc
// @Summary Update the supplied fields of a conference
// @Description A non-empty reviews list replaces every review; an absent or empty list leaves them untouched.
// @Tags conferences
// @Accept json
// @Param id path int true "Conference ID"
// @Param body body model.ConferenceInput true "Fields to update"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /conferences/{id} [patch]
func PatchConference(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		in, err := parseInput(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := svc.Patch(c.UserContext(), id, in); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AppendReviews godoc
// @Summary Append reviews to a conference
// @Tags reviews
// @Accept json
// @Param id path int true "Conference ID"
// @Param body body []model.ReviewInput true "Reviews"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /conferences/{id}/reviews [patch]
func AppendReviews(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var reviews []model.ReviewInput
		if err := c.BodyParser(&reviews); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		}
		if err := svc.AppendReviews(c.UserContext(), id, reviews); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteReview godoc
// @Summary Delete one review of a conference
// @Tags reviews
// @Param id path int true "Conference ID"
// @Param reviewId path int true "Review ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /conferences/{id}/reviews/{reviewId} [delete]
func DeleteReview(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		reviewID, ok := paramID(c, "reviewId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid review id format")
		}
		if err := svc.DeleteReview(c.UserContext(), id, reviewID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteConference godoc
// @Summary Delete a conference and its reviews
// @Tags conferences
// @Param id path int true "Conference ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /conferences/{id} [delete]
func DeleteConference(svc service.ConferenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
