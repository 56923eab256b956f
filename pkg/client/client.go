// Package client is the Go SDK for the WeTrack API. Every call is
// asynchronous: the request runs on the client's subscribe scheduler and the
// caller's callback fires on the observe scheduler, exactly once per call.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wetrack/wetrack/pkg/digest"
)

const defaultConnectTimeout = 10 * time.Second

// Client talks to a WeTrack server. Construct it with New; the zero value is
// not usable.
type Client struct {
	baseURL     string
	http        *http.Client
	subscribeOn Scheduler
	observeOn   Scheduler
}

// Option configures a Client.
type Option func(*Client)

// WithConnectTimeout bounds dialing only. Requests themselves have no
// deadline, matching the long-poll friendly behavior of the default client.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			DialContext: (&net.Dialer{Timeout: d}).DialContext,
		}
	}
}

// WithSubscribeScheduler sets the execution context requests run on.
func WithSubscribeScheduler(s Scheduler) Option {
	return func(c *Client) { c.subscribeOn = s }
}

// WithObserveScheduler sets the execution context callbacks fire on.
func WithObserveScheduler(s Scheduler) Option {
	return func(c *Client) { c.observeOn = s }
}

// New builds a Client for the given base URL, e.g. "http://localhost:8080".
// By default requests run on fresh goroutines and callbacks fire inline on
// the request goroutine.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: defaultConnectTimeout}).DialContext,
			},
		},
		subscribeOn: GoScheduler{},
		observeOn:   SyncScheduler{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// enqueue runs the round trip on the subscribe scheduler and hands the result
// to deliver on the observe scheduler.
func (c *Client) enqueue(perform func() exchange, deliver func(exchange)) {
	c.subscribeOn.Schedule(func() {
		ex := perform()
		c.observeOn.Schedule(func() { deliver(ex) })
	})
}

// do performs one HTTP round trip. body may be nil; contentType is ignored
// when it is.
func (c *Client) do(method, path string, query url.Values, contentType string, body []byte) exchange {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return exchange{err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return exchange{err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return exchange{err: err}
	}
	return exchange{
		status:     resp.StatusCode,
		statusText: strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))),
		body:       data,
	}
}

func (c *Client) doJSON(method, path string, query url.Values, body any) exchange {
	payload, err := json.Marshal(body)
	if err != nil {
		return exchange{err: err}
	}
	return c.do(method, path, query, "application/json", payload)
}

func tokenQuery(token string) url.Values {
	return url.Values{"token": []string{token}}
}

// --- Auth ---

// Login exchanges credentials for a session token. The password is digested
// before it leaves the process; the plaintext is never sent.
func (c *Client) Login(username, password string, callback EntityCallback[UserToken]) {
	body := map[string]string{
		"username": username,
		"password": digest.Hash(password),
	}
	c.enqueue(
		func() exchange { return c.doJSON(http.MethodPost, "/login", nil, body) },
		func(ex exchange) { deliverEntity(ex, callback) },
	)
}

// TokenVerify asks the server whether token is a live session for username.
// The token travels as the raw request body.
func (c *Client) TokenVerify(username, token string, callback ResultCallback) {
	path := "/users/" + url.PathEscape(username) + "/tokenValidate"
	c.enqueue(
		func() exchange { return c.do(http.MethodPost, path, nil, "text/plain", []byte(token)) },
		func(ex exchange) { deliverResult(ex, callback) },
	)
}

// --- Users ---

// CreateUser registers a new account. The password is digested before it is
// sent.
func (c *Client) CreateUser(user User, callback CreatedMessageCallback) {
	if user.Password != "" {
		user.Password = digest.Hash(user.Password)
	}
	c.enqueue(
		func() exchange { return c.doJSON(http.MethodPost, "/users", nil, user) },
		func(ex exchange) { deliverCreated(ex, callback) },
	)
}

// UserExists probes for an account by username.
func (c *Client) UserExists(username string, callback ResultCallback) {
	path := "/users/" + url.PathEscape(username)
	c.enqueue(
		func() exchange { return c.do(http.MethodHead, path, nil, "", nil) },
		func(ex exchange) { deliverResult(ex, callback) },
	)
}

// GetUser fetches a user's public profile.
func (c *Client) GetUser(username string, callback EntityCallback[User]) {
	path := "/users/" + url.PathEscape(username)
	c.enqueue(
		func() exchange { return c.do(http.MethodGet, path, nil, "", nil) },
		func(ex exchange) { deliverEntity(ex, callback) },
	)
}

// UpdateUser overwrites the non-empty profile fields of the account.
func (c *Client) UpdateUser(username, token string, user User, callback MessageCallback) {
	body := map[string]any{
		"token": token,
		"user": map[string]any{
			"nickname":  user.Nickname,
			"iconUrl":   user.IconURL,
			"email":     user.Email,
			"gender":    user.Gender,
			"birthDate": user.BirthDate,
		},
	}
	path := "/users/" + url.PathEscape(username)
	c.enqueue(
		func() exchange { return c.doJSON(http.MethodPost, path, nil, body) },
		func(ex exchange) { deliverMessage(ex, callback) },
	)
}

// UpdateUserPassword changes the account password and invalidates the current
// session. Both passwords are digested before they are sent.
func (c *Client) UpdateUserPassword(username, token, oldPassword, newPassword string, callback MessageCallback) {
	body := map[string]string{
		"token":       token,
		"oldPassword": digest.Hash(oldPassword),
		"newPassword": newPassword,
	}
	path := "/users/" + url.PathEscape(username) + "/password"
	c.enqueue(
		func() exchange { return c.doJSON(http.MethodPost, path, nil, body) },
		func(ex exchange) { deliverMessage(ex, callback) },
	)
}

// --- Friends ---

// GetUserFriendList lists the user's friends as full profiles.
func (c *Client) GetUserFriendList(username, token string, callback EntityCallback[[]User]) {
	path := "/users/" + url.PathEscape(username) + "/friends"
	c.enqueue(
		func() exchange { return c.do(http.MethodGet, path, tokenQuery(token), "", nil) },
		func(ex exchange) { deliverEntity(ex, callback) },
	)
}

// AddFriend puts friendName onto the user's friend list.
func (c *Client) AddFriend(username, token, friendName string, callback MessageCallback) {
	path := "/users/" + url.PathEscape(username) + "/friends/" + url.PathEscape(friendName)
	c.enqueue(
		func() exchange { return c.do(http.MethodPost, path, tokenQuery(token), "", nil) },
		func(ex exchange) { deliverMessage(ex, callback) },
	)
}

// DeleteFriend removes friendName from the user's friend list.
func (c *Client) DeleteFriend(username, token, friendName string, callback MessageCallback) {
	path := "/users/" + url.PathEscape(username) + "/friends/" + url.PathEscape(friendName)
	c.enqueue(
		func() exchange { return c.do(http.MethodDelete, path, tokenQuery(token), "", nil) },
		func(ex exchange) { deliverMessage(ex, callback) },
	)
}

// IsFriend probes whether friendName is on the user's friend list.
func (c *Client) IsFriend(username, token, friendName string, callback ResultCallback) {
	path := "/users/" + url.PathEscape(username) + "/friends/" + url.PathEscape(friendName)
	c.enqueue(
		func() exchange { return c.do(http.MethodHead, path, tokenQuery(token), "", nil) },
		func(ex exchange) { deliverResult(ex, callback) },
	)
}

// --- Chats ---

// CreateChat creates a member group. The caller is always a member of the
// result regardless of the submitted member list.
func (c *Client) CreateChat(token string, chat Chat, callback CreatedMessageCallback) {
	c.enqueue(
		func() exchange { return c.doJSON(http.MethodPost, "/chats", tokenQuery(token), chat) },
		func(ex exchange) { deliverCreated(ex, callback) },
	)
}

// GetUserChatList lists the chats the user belongs to.
func (c *Client) GetUserChatList(username, token string, callback EntityCallback[[]Chat]) {
	path := "/users/" + url.PathEscape(username) + "/chats"
	c.enqueue(
		func() exchange { return c.do(http.MethodGet, path, tokenQuery(token), "", nil) },
		func(ex exchange) { deliverEntity(ex, callback) },
	)
}

// AddChatMembers adds usernames to the chat. Unknown usernames are ignored.
func (c *Client) AddChatMembers(chatID, token string, usernames []string, callback MessageCallback) {
	body := map[string][]string{"usernames": usernames}
	path := "/chats/" + url.PathEscape(chatID) + "/members"
	c.enqueue(
		func() exchange { return c.doJSON(http.MethodPost, path, tokenQuery(token), body) },
		func(ex exchange) { deliverMessage(ex, callback) },
	)
}

// GetChatMembers lists the chat's members as full profiles.
func (c *Client) GetChatMembers(chatID, token string, callback EntityCallback[[]User]) {
	path := "/chats/" + url.PathEscape(chatID) + "/members"
	c.enqueue(
		func() exchange { return c.do(http.MethodGet, path, tokenQuery(token), "", nil) },
		func(ex exchange) { deliverEntity(ex, callback) },
	)
}

// RemoveChatMember removes username from the chat.
func (c *Client) RemoveChatMember(chatID, username, token string, callback MessageCallback) {
	path := "/chats/" + url.PathEscape(chatID) + "/members/" + url.PathEscape(username)
	c.enqueue(
		func() exchange { return c.do(http.MethodDelete, path, tokenQuery(token), "", nil) },
		func(ex exchange) { deliverMessage(ex, callback) },
	)
}

// ExitChat removes the calling user from the chat.
func (c *Client) ExitChat(username, token, chatID string, callback MessageCallback) {
	path := "/users/" + url.PathEscape(username) + "/chats/" + url.PathEscape(chatID)
	c.enqueue(
		func() exchange { return c.do(http.MethodDelete, path, tokenQuery(token), "", nil) },
		func(ex exchange) { deliverMessage(ex, callback) },
	)
}

// --- Locations ---

// UploadLocations stores a batch of position pings. The token travels in the
// body alongside the batch.
func (c *Client) UploadLocations(username, token string, locations []Location, callback MessageCallback) {
	body := map[string]any{
		"token":     token,
		"locations": locations,
	}
	path := "/users/" + url.PathEscape(username) + "/locations"
	c.enqueue(
		func() exchange { return c.doJSON(http.MethodPost, path, nil, body) },
		func(ex exchange) { deliverMessage(ex, callback) },
	)
}

// GetLocationsSince fetches all pings at or after since, oldest first. A zero
// since fetches everything.
func (c *Client) GetLocationsSince(username string, since time.Time, callback EntityCallback[[]Location]) {
	path := "/users/" + url.PathEscape(username) + "/locations"
	query := url.Values{}
	if !since.IsZero() {
		query.Set("since", since.Format(dateTimeLayout))
	}
	c.enqueue(
		func() exchange { return c.do(http.MethodGet, path, query, "", nil) },
		func(ex exchange) { deliverEntity(ex, callback) },
	)
}

// GetLatestLocation fetches the user's newest ping.
func (c *Client) GetLatestLocation(username string, callback EntityCallback[Location]) {
	path := "/users/" + url.PathEscape(username) + "/locations/latest"
	c.enqueue(
		func() exchange { return c.do(http.MethodGet, path, nil, "", nil) },
		func(ex exchange) { deliverEntity(ex, callback) },
	)
}
