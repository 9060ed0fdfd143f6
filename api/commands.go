package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"project-board/board"
	"project-board/domain"
	"project-board/store"
)

// postCommands accepts a batch of board commands. Payloads are decoded and
// type-checked before any state changes, so a malformed batch is rejected
// whole. Commands whose idempotency key was already recorded are silently
// skipped; a validation failure rolls its key back so the client may fix and
// resubmit the same batch.
func postCommands(form Submitter, st *store.Store, deduper Deduper, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		lr := io.LimitReader(c.Request().Body, postCommandMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		cmds := make([]domain.Command, 0, 4)
		if err := dec.Decode(&cmds); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}

		apply := make([]func() error, len(cmds))
		for i := range cmds {
			fn, err := buildApply(form, st, &cmds[i])
			if err != nil {
				return c.String(http.StatusBadRequest, err.Error())
			}
			apply[i] = fn
		}

		keys := finalizeCommands(cmds)

		fresh := make([]bool, len(keys))
		for i := range fresh {
			fresh[i] = true
		}
		if deduper != nil {
			added, err := deduper.AddMany(ctx, keys)
			if err != nil {
				// Dedup is best effort: an unreachable deduper must not
				// reject the board's writes.
				logger.WithField("error", err.Error()).Warn("dedupe unavailable, applying commands unchecked")
			} else {
				fresh = added
			}
		}

		for i := range cmds {
			if !fresh[i] {
				logger.WithField("key", keys[i]).Debug("duplicate command skipped")
				continue
			}
			if err := apply[i](); err != nil {
				if deduper != nil {
					if rerr := deduper.Remove(ctx, keys[i]); rerr != nil {
						logger.WithField("error", rerr.Error()).Warn("dedupe rollback failed")
					}
				}
				if errors.Is(err, board.ErrInvalidInput) {
					return c.JSON(http.StatusUnprocessableEntity, postCommandResponse{
						IdempotencyKeys: keys,
						Error:           err.Error(),
					})
				}
				c.Logger().Error(err)
				return c.String(http.StatusInternalServerError, "failed to apply commands")
			}
		}

		return c.JSON(http.StatusAccepted, postCommandResponse{IdempotencyKeys: keys})
	}
}

// buildApply decodes the command payload and returns the closure that applies
// it. Unknown command types and malformed payloads are reported before any
// command in the batch runs.
func buildApply(form Submitter, st *store.Store, cmd *domain.Command) (func() error, error) {
	if cmd.EntityType != "" && cmd.EntityType != domain.EntityProject {
		return nil, fmt.Errorf("unknown entity type %q", cmd.EntityType)
	}
	switch cmd.Type {
	case domain.CommandAddProject:
		var data domain.AddProjectData
		if err := sonic.Unmarshal(cmd.Data, &data); err != nil {
			return nil, fmt.Errorf("invalid %s payload", cmd.Type)
		}
		return func() error {
			_, err := form.Submit(data.Title, data.Description, data.People)
			return err
		}, nil
	case domain.CommandMoveProject:
		var data domain.MoveProjectData
		if err := sonic.Unmarshal(cmd.Data, &data); err != nil {
			return nil, fmt.Errorf("invalid %s payload", cmd.Type)
		}
		status, err := domain.ParseStatus(data.Status)
		if err != nil {
			return nil, err
		}
		return func() error {
			// Unknown identity or unchanged status is a silent no-op.
			st.Move(data.ID, status)
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown command type %q", cmd.Type)
	}
}

// finalizeCommands stamps each command with a strictly increasing timestamp
// and ensures every command carries an idempotency key, generating one from
// the timestamp when the client supplied none. It returns the keys in batch
// order.
func finalizeCommands(cmds []domain.Command) []string {
	keys := make([]string, len(cmds))
	if len(cmds) == 0 {
		return keys
	}
	start := nextTimestampRange(int64(len(cmds)))
	for i := range cmds {
		ts := start + int64(i)
		cmds[i].Timestamp = ts
		if cmds[i].IdempotencyKey == "" {
			cmds[i].IdempotencyKey = strconv.FormatInt(ts, 36)
		}
		cmds[i].ID = cmds[i].IdempotencyKey
		keys[i] = cmds[i].IdempotencyKey
	}
	return keys
}
