package votes

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/univoz/univoz-backend/internal/apperr"
	"github.com/univoz/univoz-backend/internal/models"
)

// State is the vote a user holds on a post. Requests name the desired
// terminal state directly; StateNone clears an existing vote.
type State string

const (
	StateNone     State = "none"
	StateAgree    State = "agree"
	StateDisagree State = "disagree"
)

// ParseState validates a wire-level vote_type value.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateNone, StateAgree, StateDisagree:
		return State(s), nil
	default:
		return "", apperr.InvalidOperation("vote_type must be \"agree\", \"disagree\" or \"none\"")
	}
}

// Ledger owns the votes table and the agree/disagree counters on posts.
// Counters are a materialized projection of the ledger rows; every mutation
// goes through Cast so the two can never drift.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Cast moves the (user, post) pair to the requested state and adjusts the
// post counters in the same transaction. The post row is locked up front, so
// concurrent casts against one post serialize while other posts stay free.
// Casting the state the user already holds is a no-op.
func (l *Ledger) Cast(userID, postID int, requested State) (*models.Post, error) {
	if _, err := ParseState(string(requested)); err != nil {
		return nil, err
	}

	var post models.Post
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("post not found")
			}
			return apperr.Internal("failed to load post", err)
		}

		var vote models.Vote
		current := StateNone
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&vote).Error
		switch {
		case err == nil:
			current = State(vote.VoteType)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no existing vote
		default:
			return apperr.Internal("failed to load vote", err)
		}

		if current == requested {
			return nil
		}

		switch {
		case current == StateNone:
			vote = models.Vote{UserID: userID, PostID: postID, VoteType: string(requested)}
			if err := tx.Create(&vote).Error; err != nil {
				return apperr.Internal("failed to record vote", err)
			}
		case requested == StateNone:
			if err := tx.Delete(&vote).Error; err != nil {
				return apperr.Internal("failed to remove vote", err)
			}
		default:
			vote.VoteType = string(requested)
			if err := tx.Save(&vote).Error; err != nil {
				return apperr.Internal("failed to update vote", err)
			}
		}

		agree, disagree := post.AgreeCount, post.DisagreeCount
		switch current {
		case StateAgree:
			agree--
		case StateDisagree:
			disagree--
		}
		switch requested {
		case StateAgree:
			agree++
		case StateDisagree:
			disagree++
		}

		// Counters can only go negative if they already disagreed with the
		// ledger. Clamp and keep serving; Reconcile can rebuild them.
		if agree < 0 || disagree < 0 {
			log.Printf("vote counters out of sync on post %d (agree=%d disagree=%d), clamping", post.ID, agree, disagree)
			if agree < 0 {
				agree = 0
			}
			if disagree < 0 {
				disagree = 0
			}
		}

		post.AgreeCount, post.DisagreeCount = agree, disagree
		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
			Updates(map[string]interface{}{"agree_count": agree, "disagree_count": disagree}).Error; err != nil {
			return apperr.Internal("failed to update post counters", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := l.db.Preload("Owner").First(&post, post.ID).Error; err != nil {
		return nil, apperr.Internal("failed to reload post", err)
	}
	return &post, nil
}

// StateFor returns the vote the user currently holds on the post.
func (l *Ledger) StateFor(userID, postID int) (State, error) {
	var vote models.Vote
	err := l.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StateNone, nil
	}
	if err != nil {
		return StateNone, apperr.Internal("failed to load vote", err)
	}
	return State(vote.VoteType), nil
}

// Reconcile rebuilds a post's counters from its ledger rows. Not part of the
// request path; repair tool for a post whose counters are suspected stale.
func (l *Ledger) Reconcile(postID int) (*models.Post, error) {
	var post models.Post
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("post not found")
			}
			return apperr.Internal("failed to load post", err)
		}

		var agree, disagree int64
		if err := tx.Model(&models.Vote{}).
			Where("post_id = ? AND vote_type = ?", postID, string(StateAgree)).Count(&agree).Error; err != nil {
			return apperr.Internal("failed to count agree votes", err)
		}
		if err := tx.Model(&models.Vote{}).
			Where("post_id = ? AND vote_type = ?", postID, string(StateDisagree)).Count(&disagree).Error; err != nil {
			return apperr.Internal("failed to count disagree votes", err)
		}

		post.AgreeCount, post.DisagreeCount = int(agree), int(disagree)
		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
			Updates(map[string]interface{}{"agree_count": post.AgreeCount, "disagree_count": post.DisagreeCount}).Error; err != nil {
			return apperr.Internal("failed to update post counters", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
