package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/failboard/failboard/models"
)

// memDB is a shared in-memory database for service tests. One mutex guards
// everything, which also gives the vote ledger the per-post serialization
// the real store gets from row locks.
type memDB struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]*models.User
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	votes    map[[2]uint]*models.Vote // keyed by {userID, postID}
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[uint]*models.User),
		posts:    make(map[uint]*models.Post),
		comments: make(map[uint]*models.Comment),
		votes:    make(map[[2]uint]*models.Vote),
	}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

// recountVotes recomputes a post's net tally from the per-user ledger,
// bypassing the materialized VoteScore. Used to check the core invariant.
func (db *memDB) recountVotes(postID uint) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	sum := 0
	for key, v := range db.votes {
		if key[1] == postID {
			sum += int(v.Value)
		}
	}
	return sum
}

type memUsers struct {
	db *memDB
	// non-nil values simulate storage failures
	createErr error
	lookupErr error
}

func (m *memUsers) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, u := range m.db.users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	user.ID = m.db.id()
	user.CreatedAt = time.Now()
	cp := *user
	m.db.users[user.ID] = &cp
	return nil
}

func (m *memUsers) ByID(ctx context.Context, id uint) (*models.User, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.users[id]
	if !ok {
		return nil, ErrNoRecord
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) ByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, u := range m.db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNoRecord
}

type memPosts struct {
	db        *memDB
	createErr error
}

func (m *memPosts) Create(ctx context.Context, post *models.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	post.ID = m.db.id()
	post.CreatedAt = time.Now()
	if author, ok := m.db.users[post.UserID]; ok {
		post.User = *author
	}
	cp := *post
	m.db.posts[post.ID] = &cp
	return nil
}

func (m *memPosts) ByID(ctx context.Context, id uint) (*models.Post, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.posts[id]
	if !ok {
		return nil, ErrNoRecord
	}
	cp := *p
	return &cp, nil
}

func (m *memPosts) List(ctx context.Context, category models.Category) ([]models.Post, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []models.Post
	for _, p := range m.db.posts {
		if category == "" || p.Category == category {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memPosts) Delete(ctx context.Context, postID, requesterID uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.posts[postID]
	if !ok {
		return ErrNoRecord
	}
	if p.UserID != requesterID {
		return ErrNotOwner
	}
	delete(m.db.posts, postID)
	for id, c := range m.db.comments {
		if c.PostID == postID {
			delete(m.db.comments, id)
		}
	}
	for key := range m.db.votes {
		if key[1] == postID {
			delete(m.db.votes, key)
		}
	}
	return nil
}

type memComments struct {
	db *memDB
}

func (m *memComments) Create(ctx context.Context, comment *models.Comment) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	post, ok := m.db.posts[comment.PostID]
	if !ok {
		return ErrNoRecord
	}
	comment.ID = m.db.id()
	comment.CreatedAt = time.Now()
	if author, ok := m.db.users[comment.UserID]; ok {
		comment.User = *author
	}
	cp := *comment
	m.db.comments[comment.ID] = &cp
	post.CommentCount++
	return nil
}

func (m *memComments) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []models.Comment
	for _, c := range m.db.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memVotes struct {
	db *memDB
}

func (m *memVotes) Cast(ctx context.Context, userID, postID uint, decide func(current models.VoteState) models.VoteState) (models.VoteState, int, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	post, ok := m.db.posts[postID]
	if !ok {
		return models.VoteNone, 0, ErrNoRecord
	}

	key := [2]uint{userID, postID}
	current := models.VoteNone
	if v, ok := m.db.votes[key]; ok {
		current = v.State()
	}

	next := decide(current)
	switch {
	case next == current:
	case next == models.VoteNone:
		delete(m.db.votes, key)
	default:
		m.db.votes[key] = &models.Vote{UserID: userID, PostID: postID, Value: int8(next)}
	}

	post.VoteScore += next.Score() - current.Score()
	return next, post.VoteScore, nil
}

func (m *memVotes) State(ctx context.Context, userID, postID uint) (models.VoteState, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if v, ok := m.db.votes[[2]uint{userID, postID}]; ok {
		return v.State(), nil
	}
	return models.VoteNone, nil
}
