package tweet

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFollowStore is an in-memory follow graph for tests
type fakeFollowStore struct {
	edges map[[2]int64]bool
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{edges: make(map[[2]int64]bool)}
}

func (f *fakeFollowStore) follow(followerID, followeeID int64) {
	f.edges[[2]int64{followerID, followeeID}] = true
}

func (f *fakeFollowStore) IsFollowing(_ context.Context, followerID, followeeID int64) (bool, error) {
	return f.edges[[2]int64{followerID, followeeID}], nil
}

// fakeTweetStore is an in-memory TweetStore mirroring the SQL semantics of
// the real repository, including feed ordering and capping
type fakeTweetStore struct {
	tweets    map[int64]*Tweet
	likes     map[int64][]string
	replies   map[int64][]*Reply
	usernames map[int64]string
	follows   *fakeFollowStore
	nextID    int64
	now       time.Time
}

func newFakeTweetStore(follows *fakeFollowStore) *fakeTweetStore {
	return &fakeTweetStore{
		tweets:    make(map[int64]*Tweet),
		likes:     make(map[int64][]string),
		replies:   make(map[int64][]*Reply),
		usernames: make(map[int64]string),
		follows:   follows,
		now:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// addTweet seeds a tweet one second newer than the previous one
func (f *fakeTweetStore) addTweet(authorID int64, body string) *Tweet {
	f.nextID++
	f.now = f.now.Add(time.Second)
	tweet := &Tweet{ID: f.nextID, AuthorID: authorID, Body: body, CreatedAt: f.now}
	f.tweets[tweet.ID] = tweet
	return tweet
}

func (f *fakeTweetStore) GetByID(_ context.Context, id int64) (*Tweet, error) {
	return f.tweets[id], nil
}

func (f *fakeTweetStore) Create(ctx context.Context, authorID int64, body string) (*Tweet, error) {
	return f.addTweet(authorID, body), nil
}

func (f *fakeTweetStore) Delete(_ context.Context, id int64) error {
	delete(f.tweets, id)
	return nil
}

func (f *fakeTweetStore) CountLikes(_ context.Context, tweetID int64) (int, error) {
	return len(f.likes[tweetID]), nil
}

func (f *fakeTweetStore) CountReplies(_ context.Context, tweetID int64) (int, error) {
	return len(f.replies[tweetID]), nil
}

func (f *fakeTweetStore) LikerUsernames(_ context.Context, tweetID int64) ([]string, error) {
	return f.likes[tweetID], nil
}

func (f *fakeTweetStore) Replies(_ context.Context, tweetID int64) ([]*Reply, error) {
	return f.replies[tweetID], nil
}

func (f *fakeTweetStore) ListByAuthor(_ context.Context, authorID int64) ([]*TweetWithCounts, error) {
	tweets := []*TweetWithCounts{}
	for _, t := range f.tweets {
		if t.AuthorID == authorID {
			tweets = append(tweets, &TweetWithCounts{
				Body:      t.Body,
				Likes:     len(f.likes[t.ID]),
				Replies:   len(f.replies[t.ID]),
				CreatedAt: t.CreatedAt,
			})
		}
	}
	sort.Slice(tweets, func(i, j int) bool { return tweets[i].CreatedAt.After(tweets[j].CreatedAt) })
	return tweets, nil
}

func (f *fakeTweetStore) Feed(_ context.Context, userID int64, limit int) ([]*FeedItem, error) {
	items := []*FeedItem{}
	for _, t := range f.tweets {
		if f.follows.edges[[2]int64{userID, t.AuthorID}] {
			items = append(items, &FeedItem{
				Username:  f.usernames[t.AuthorID],
				Body:      t.Body,
				CreatedAt: t.CreatedAt,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func newTestService() (*Service, *fakeTweetStore, *fakeFollowStore) {
	follows := newFakeFollowStore()
	store := newFakeTweetStore(follows)
	return NewService(store, follows), store, follows
}

const (
	aliceID int64 = 1
	bobID   int64 = 2
	carolID int64 = 3
)

func TestDetailTweetNotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Detail(context.Background(), aliceID, 999)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestDetailDeniedWithoutFollowEdge(t *testing.T) {
	service, store, _ := newTestService()
	tweet := store.addTweet(bobID, "hello")

	_, err := service.Detail(context.Background(), carolID, tweet.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestDetailAllowedForFollower(t *testing.T) {
	service, store, follows := newTestService()
	follows.follow(aliceID, bobID)
	tweet := store.addTweet(bobID, "hello")
	store.likes[tweet.ID] = []string{"alice", "carol"}
	store.replies[tweet.ID] = []*Reply{{Name: "Alice", Body: "hi bob"}}

	detail, err := service.Detail(context.Background(), aliceID, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", detail.Body)
	assert.Equal(t, 2, detail.Likes)
	assert.Equal(t, 1, detail.Replies)
}

// Viewing one's own tweet through the detail endpoint requires an explicit
// self-follow edge; the own-tweets listing is the only ungated path.
func TestDetailOwnTweetDeniedWithoutSelfFollow(t *testing.T) {
	service, store, _ := newTestService()
	tweet := store.addTweet(bobID, "my own tweet")

	_, err := service.Detail(context.Background(), bobID, tweet.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestDetailOwnTweetAllowedWithSelfFollow(t *testing.T) {
	service, store, follows := newTestService()
	follows.follow(bobID, bobID)
	tweet := store.addTweet(bobID, "my own tweet")

	_, err := service.Detail(context.Background(), bobID, tweet.ID)
	assert.NoError(t, err)
}

func TestLikesGatedByVisibility(t *testing.T) {
	service, store, follows := newTestService()
	follows.follow(aliceID, bobID)
	tweet := store.addTweet(bobID, "hello")
	store.likes[tweet.ID] = []string{"alice"}

	likes, err := service.Likes(context.Background(), aliceID, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, likes)

	_, err = service.Likes(context.Background(), carolID, tweet.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)

	_, err = service.Likes(context.Background(), aliceID, 999)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestRepliesGatedByVisibility(t *testing.T) {
	service, store, follows := newTestService()
	follows.follow(aliceID, bobID)
	tweet := store.addTweet(bobID, "hello")
	store.replies[tweet.ID] = []*Reply{{Name: "Alice", Body: "hi"}}

	replies, err := service.Replies(context.Background(), aliceID, tweet.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "Alice", replies[0].Name)

	_, err = service.Replies(context.Background(), carolID, tweet.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestFeedOnlyFolloweesNewestFirstCapped(t *testing.T) {
	service, store, follows := newTestService()
	follows.follow(aliceID, bobID)
	follows.follow(aliceID, carolID)
	store.usernames[bobID] = "bob"
	store.usernames[carolID] = "carol"

	store.addTweet(bobID, "b1")
	store.addTweet(carolID, "c1")
	store.addTweet(bobID, "b2")
	store.addTweet(99, "stranger") // not followed, must never appear
	store.addTweet(carolID, "c2")
	store.addTweet(bobID, "b3")

	items, err := service.Feed(context.Background(), aliceID)
	require.NoError(t, err)
	require.Len(t, items, 4)

	bodies := make([]string, len(items))
	for i, item := range items {
		bodies[i] = item.Body
	}
	assert.Equal(t, []string{"b3", "c2", "b2", "c1"}, bodies)

	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt))
	}
}

func TestFeedEmptyWhenFollowingNoOne(t *testing.T) {
	service, store, _ := newTestService()
	store.addTweet(bobID, "hello")

	items, err := service.Feed(context.Background(), aliceID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListOwnIncludesCounts(t *testing.T) {
	service, store, _ := newTestService()
	tweet := store.addTweet(bobID, "mine")
	store.likes[tweet.ID] = []string{"alice"}
	store.addTweet(carolID, "not mine")

	tweets, err := service.ListOwn(context.Background(), bobID)
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, "mine", tweets[0].Body)
	assert.Equal(t, 1, tweets[0].Likes)
}

func TestCreateForcesAuthor(t *testing.T) {
	service, store, _ := newTestService()

	tweet, err := service.Create(context.Background(), aliceID, "hello world")
	require.NoError(t, err)
	assert.Equal(t, aliceID, tweet.AuthorID)
	assert.Equal(t, tweet.AuthorID, store.tweets[tweet.ID].AuthorID)
}

func TestDeleteNotFound(t *testing.T) {
	service, _, _ := newTestService()

	err := service.Delete(context.Background(), aliceID, 999)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestDeleteNotOwnerLeavesTweet(t *testing.T) {
	service, store, _ := newTestService()
	tweet := store.addTweet(bobID, "hello")

	err := service.Delete(context.Background(), aliceID, tweet.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Contains(t, store.tweets, tweet.ID)
}

func TestDeleteOwnTweet(t *testing.T) {
	service, store, follows := newTestService()
	follows.follow(aliceID, bobID)
	tweet := store.addTweet(bobID, "hello")

	err := service.Delete(context.Background(), bobID, tweet.ID)
	require.NoError(t, err)

	// A subsequent fetch must report the tweet as gone
	_, err = service.Detail(context.Background(), aliceID, tweet.ID)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}
