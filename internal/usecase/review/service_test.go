package review

import (
	"context"
	"testing"

	domainLocation "accessmap/internal/domain/location"
	domainReview "accessmap/internal/domain/review"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewRepo struct {
	reviews    map[uuid.UUID]*domainReview.Review
	replies    map[uuid.UUID]*domainReview.Reply
	likes      map[uuid.UUID]map[string]bool
	replyLikes map[uuid.UUID]map[string]bool
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:    make(map[uuid.UUID]*domainReview.Review),
		replies:    make(map[uuid.UUID]*domainReview.Reply),
		likes:      make(map[uuid.UUID]map[string]bool),
		replyLikes: make(map[uuid.UUID]map[string]bool),
	}
}

func (f *fakeReviewRepo) Create(_ context.Context, rev *domainReview.Review) error {
	rev.ID = uuid.New()
	f.reviews[rev.ID] = rev
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, reviewID uuid.UUID) (*domainReview.Review, error) {
	rev, ok := f.reviews[reviewID]
	if !ok {
		return nil, domainReview.ErrReviewNotFound
	}

	out := *rev
	out.LikedBy = nil
	for username := range f.likes[reviewID] {
		out.LikedBy = append(out.LikedBy, username)
	}
	out.Likes = int64(len(out.LikedBy))

	out.Replies = nil
	for _, reply := range f.replies {
		if reply.ReviewID == reviewID {
			r := *reply
			r.LikedBy = nil
			for username := range f.replyLikes[reply.ID] {
				r.LikedBy = append(r.LikedBy, username)
			}
			out.Replies = append(out.Replies, &r)
		}
	}
	return &out, nil
}

func (f *fakeReviewRepo) GetByLocation(ctx context.Context, locationID uuid.UUID) ([]*domainReview.Review, error) {
	var out []*domainReview.Review
	for id, rev := range f.reviews {
		if rev.LocationID == locationID {
			full, _ := f.GetByID(ctx, id)
			out = append(out, full)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByUsername(ctx context.Context, username string) ([]*domainReview.Review, error) {
	var out []*domainReview.Review
	for id, rev := range f.reviews {
		if rev.Username == username {
			full, _ := f.GetByID(ctx, id)
			out = append(out, full)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, rev *domainReview.Review, _ bool) error {
	stored, ok := f.reviews[rev.ID]
	if !ok {
		return domainReview.ErrReviewNotFound
	}
	stored.Comment = rev.Comment
	stored.Rating = rev.Rating
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, rev *domainReview.Review) error {
	if _, ok := f.reviews[rev.ID]; !ok {
		return domainReview.ErrReviewNotFound
	}
	delete(f.reviews, rev.ID)
	return nil
}

func (f *fakeReviewRepo) HasLiked(_ context.Context, reviewID uuid.UUID, username string) (bool, error) {
	return f.likes[reviewID][username], nil
}

func (f *fakeReviewRepo) AddLike(_ context.Context, reviewID uuid.UUID, username string) error {
	if f.likes[reviewID] == nil {
		f.likes[reviewID] = make(map[string]bool)
	}
	f.likes[reviewID][username] = true
	return nil
}

func (f *fakeReviewRepo) RemoveLike(_ context.Context, reviewID uuid.UUID, username string) error {
	delete(f.likes[reviewID], username)
	return nil
}

func (f *fakeReviewRepo) AddReply(_ context.Context, reply *domainReview.Reply) error {
	reply.ID = uuid.New()
	f.replies[reply.ID] = reply
	return nil
}

func (f *fakeReviewRepo) GetReply(_ context.Context, reviewID, replyID uuid.UUID) (*domainReview.Reply, error) {
	reply, ok := f.replies[replyID]
	if !ok || reply.ReviewID != reviewID {
		return nil, domainReview.ErrReplyNotFound
	}

	out := *reply
	out.LikedBy = nil
	for username := range f.replyLikes[replyID] {
		out.LikedBy = append(out.LikedBy, username)
	}
	return &out, nil
}

func (f *fakeReviewRepo) UpdateReply(_ context.Context, reply *domainReview.Reply) error {
	stored, ok := f.replies[reply.ID]
	if !ok {
		return domainReview.ErrReplyNotFound
	}
	stored.Text = reply.Text
	return nil
}

func (f *fakeReviewRepo) DeleteReply(_ context.Context, reviewID, replyID uuid.UUID) error {
	reply, ok := f.replies[replyID]
	if !ok || reply.ReviewID != reviewID {
		return domainReview.ErrReplyNotFound
	}
	delete(f.replies, replyID)
	return nil
}

func (f *fakeReviewRepo) HasReplyLike(_ context.Context, replyID uuid.UUID, username string) (bool, error) {
	return f.replyLikes[replyID][username], nil
}

func (f *fakeReviewRepo) AddReplyLike(_ context.Context, replyID uuid.UUID, username string) error {
	if f.replyLikes[replyID] == nil {
		f.replyLikes[replyID] = make(map[string]bool)
	}
	f.replyLikes[replyID][username] = true
	return nil
}

func (f *fakeReviewRepo) RemoveReplyLike(_ context.Context, replyID uuid.UUID, username string) error {
	delete(f.replyLikes[replyID], username)
	return nil
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]*domainLocation.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[uuid.UUID]*domainLocation.Location)}
}

func (f *fakeLocationRepo) Create(_ context.Context, loc *domainLocation.Location) error {
	loc.ID = uuid.New()
	f.locations[loc.ID] = loc
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, locationID uuid.UUID) (*domainLocation.Location, error) {
	loc, ok := f.locations[locationID]
	if !ok {
		return nil, domainLocation.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) GetAll(_ context.Context) ([]*domainLocation.Location, error) {
	var out []*domainLocation.Location
	for _, loc := range f.locations {
		out = append(out, loc)
	}
	return out, nil
}

func (f *fakeLocationRepo) GetByIDs(_ context.Context, locationIDs []uuid.UUID) ([]*domainLocation.Location, error) {
	var out []*domainLocation.Location
	for _, id := range locationIDs {
		if loc, ok := f.locations[id]; ok {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) GetBySubmitter(_ context.Context, username string) ([]*domainLocation.Location, error) {
	var out []*domainLocation.Location
	for _, loc := range f.locations {
		if loc.SubmittedBy == username {
			out = append(out, loc)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *fakeReviewRepo, *domainLocation.Location) {
	t.Helper()

	reviewRepo := newFakeReviewRepo()
	locationRepo := newFakeLocationRepo()

	loc := &domainLocation.Location{Name: "Central Library", Category: domainLocation.CategoryPublicBuilding}
	require.NoError(t, locationRepo.Create(context.Background(), loc))

	return NewService(reviewRepo, locationRepo), reviewRepo, loc
}

func TestAddReview(t *testing.T) {
	svc, _, loc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, "ada", loc.ID, &AddReviewRequest{Comment: "Step-free entrance", Rating: 4})
	require.NoError(t, err)

	assert.Equal(t, "ada", created.Username)
	assert.Equal(t, 4, created.Rating)
	assert.Equal(t, loc.ID, created.LocationID)
	assert.Empty(t, created.LikedBy)
	assert.Empty(t, created.Replies)
}

func TestAddReviewUnknownLocation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Add(context.Background(), "ada", uuid.New(), &AddReviewRequest{Comment: "x", Rating: 3})
	assert.ErrorIs(t, err, domainLocation.ErrLocationNotFound)
}

func TestAddReviewInvalidRating(t *testing.T) {
	svc, _, loc := newTestService(t)

	_, err := svc.Add(context.Background(), "ada", loc.ID, &AddReviewRequest{Comment: "x", Rating: 6})
	assert.ErrorIs(t, err, domainReview.ErrInvalidRating)
}

func TestEditReviewInvalidRating(t *testing.T) {
	svc, _, loc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, "ada", loc.ID, &AddReviewRequest{Comment: "ok", Rating: 3})
	require.NoError(t, err)

	rating := 0
	_, err = svc.Edit(ctx, "ada", created.ID, &EditReviewRequest{Rating: &rating})
	assert.ErrorIs(t, err, domainReview.ErrInvalidRating)
}

func TestEditReviewAuthorOnly(t *testing.T) {
	svc, _, loc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, "ada", loc.ID, &AddReviewRequest{Comment: "ok", Rating: 3})
	require.NoError(t, err)

	comment := "updated"
	_, err = svc.Edit(ctx, "grace", created.ID, &EditReviewRequest{Comment: &comment})
	assert.ErrorIs(t, err, domainReview.ErrNotAuthor)

	rating := 5
	updated, err := svc.Edit(ctx, "ada", created.ID, &EditReviewRequest{Comment: &comment, Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Comment)
	assert.Equal(t, 5, updated.Rating)
}

func TestEditReviewNothingToUpdate(t *testing.T) {
	svc, _, loc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, "ada", loc.ID, &AddReviewRequest{Comment: "ok", Rating: 3})
	require.NoError(t, err)

	_, err = svc.Edit(ctx, "ada", created.ID, &EditReviewRequest{})
	assert.ErrorIs(t, err, domainReview.ErrNothingToUpdate)
}

func TestDeleteReviewAuthorOnly(t *testing.T) {
	svc, _, loc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, "ada", loc.ID, &AddReviewRequest{Comment: "ok", Rating: 3})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "grace", created.ID), domainReview.ErrNotAuthor)
	require.NoError(t, svc.Delete(ctx, "ada", created.ID))

	_, err = svc.ListByLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, "ada", created.ID), domainReview.ErrReviewNotFound)
}

func TestToggleLike(t *testing.T) {
	svc, _, loc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, "ada", loc.ID, &AddReviewRequest{Comment: "ok", Rating: 3})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, "grace", created.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, int64(1), liked.Likes)
	assert.Contains(t, liked.LikedBy, "grace")

	unliked, err := svc.ToggleLike(ctx, "grace", created.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, int64(0), unliked.Likes)
	assert.NotContains(t, unliked.LikedBy, "grace")
}

func TestReplyLifecycle(t *testing.T) {
	svc, _, loc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, "ada", loc.ID, &AddReviewRequest{Comment: "ok", Rating: 3})
	require.NoError(t, err)

	reply, err := svc.AddReply(ctx, "grace", created.ID, &ReplyRequest{Text: "Agreed"})
	require.NoError(t, err)
	assert.Equal(t, "grace", reply.Username)

	_, err = svc.EditReply(ctx, "ada", created.ID, reply.ID, &ReplyRequest{Text: "nope"})
	assert.ErrorIs(t, err, domainReview.ErrNotAuthor)

	updated, err := svc.EditReply(ctx, "grace", created.ID, reply.ID, &ReplyRequest{Text: "Strongly agreed"})
	require.NoError(t, err)
	require.Len(t, updated.Replies, 1)
	assert.Equal(t, "Strongly agreed", updated.Replies[0].Text)

	likeResult, err := svc.ToggleReplyLike(ctx, "ada", created.ID, reply.ID)
	require.NoError(t, err)
	assert.True(t, likeResult.Liked)
	assert.Contains(t, likeResult.LikedBy, "ada")

	afterDelete, err := svc.DeleteReply(ctx, "grace", created.ID, reply.ID)
	require.NoError(t, err)
	assert.Empty(t, afterDelete.Replies)
}

func TestReplyUnknownReview(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddReply(context.Background(), "grace", uuid.New(), &ReplyRequest{Text: "hi"})
	assert.ErrorIs(t, err, domainReview.ErrReviewNotFound)
}
