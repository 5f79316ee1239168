package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/patnametro/pkg/accounts"
	"github.com/travigo/patnametro/pkg/admin"
	"github.com/travigo/patnametro/pkg/crowd"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator/global"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"github.com/travigo/patnametro/pkg/helpline"
	"github.com/travigo/patnametro/pkg/lostfound"
	"github.com/travigo/patnametro/pkg/payments"
	"github.com/travigo/patnametro/pkg/realtime"
	"github.com/travigo/patnametro/pkg/session"
	"github.com/travigo/patnametro/pkg/ticketing"
	"google.golang.org/protobuf/proto"
)

type testServer struct {
	app      *fiber.App
	services *Services
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(request *http.Request) {
		request.Header.Set("Authorization", "Bearer "+token)
	}
}

func withCookie(cookie *http.Cookie) requestOption {
	return func(request *http.Request) {
		request.AddCookie(cookie)
	}
}

func newTestServer(t *testing.T) *testServer {
	dataset, err := dataimporter.Load()
	require.NoError(t, err)

	global.Setup(dataset, crowd.NewGenerator(rand.NewPCG(3, 0)), nil)

	miniRedis := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: miniRedis.Addr()})

	tokens, err := NewTokenAuthority([]byte("test-secret"), "patnametro", time.Hour)
	require.NoError(t, err)

	accountStore, err := accounts.NewMockStore(0)
	require.NoError(t, err)

	gateway := &payments.MockGateway{
		Ledger:   &payments.Ledger{Client: redisClient},
		Accounts: accountStore,
	}

	feed := realtime.NewFeed(dataset.Trains, rand.NewPCG(1, 0))
	lostFound := lostfound.NewService(dataset, &lostfound.MemoryLostItemRepository{}, nil)

	services := &Services{
		Sessions:  session.NewStore(redisClient),
		Tokens:    tokens.WithRevocations(redisClient),
		Feed:      feed,
		Accounts:  accountStore,
		Payments:  gateway,
		Tickets:   ticketing.NewService(dataset, gateway, &ticketing.MemoryTicketRepository{}),
		LostFound: lostFound,
		Helpline:  helpline.NewService(dataset, &helpline.MemoryFeedbackRepository{}, nil),
		Admin:     admin.NewService(dataset, accountStore, feed, admin.NewMemoryAlertRepository(dataset.ServiceAlerts), lostFound),
	}

	return &testServer{
		app:      NewApp(services),
		services: services,
	}
}

func (s *testServer) do(t *testing.T, method string, path string, body any, options ...requestOption) (*http.Response, []byte) {
	var bodyReader io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(bodyJSON)
	}

	request := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for _, option := range options {
		option(request)
	}

	response, err := s.app.Test(request, -1)
	require.NoError(t, err)

	responseBody, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	return response, responseBody
}

func decode[T any](t *testing.T, body []byte) T {
	var value T
	require.NoError(t, json.Unmarshal(body, &value), string(body))
	return value
}

func sessionCookie(response *http.Response) *http.Cookie {
	for _, cookie := range response.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}

	return nil
}

type loginResponse struct {
	Token string `json:"token"`
	User  ctdf.User
}

func (s *testServer) login(t *testing.T, email string) (string, *http.Cookie) {
	response, body := s.do(t, http.MethodPost, "/core/account/login", fiber.Map{
		"Email":    email,
		"Password": "password",
	})
	require.Equal(t, http.StatusOK, response.StatusCode, string(body))

	login := decode[loginResponse](t, body)
	require.NotEmpty(t, login.Token)

	return login.Token, sessionCookie(response)
}

func TestVersion(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/version", nil)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.JSONEq(t, `{"version":"v1.0"}`, string(body))
}

func TestLines(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/lines", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	lines := decode[[]map[string]any](t, body)
	assert.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "Path")

	response, body = server.do(t, http.MethodGet, "/core/lines/green", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	detail := decode[struct {
		Line     ctdf.Line
		Stations []ctdf.Station
	}](t, body)
	assert.Equal(t, "Green Line", detail.Line.Name)
	assert.NotEmpty(t, detail.Line.Path)
	require.Len(t, detail.Stations, 4)
	for i := 1; i < len(detail.Stations); i++ {
		assert.Less(t, detail.Stations[i-1].Order, detail.Stations[i].Order)
	}

	response, _ = server.do(t, http.MethodGet, "/core/lines/purple", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestStations(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/stations", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, decode[[]ctdf.Station](t, body), 8)

	response, body = server.do(t, http.MethodGet, "/core/stations?search=PAT", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	stations := decode[[]ctdf.Station](t, body)
	require.Len(t, stations, 2)
	assert.Equal(t, "Patna Junction", stations[0].Name)

	response, body = server.do(t, http.MethodGet, "/core/stations/dp", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "Danapur", decode[ctdf.Station](t, body).Name)

	response, _ = server.do(t, http.MethodGet, "/core/stations/zz", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	response, body = server.do(t, http.MethodGet, "/core/stations/pp/departures", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	departures := decode[struct {
		Station    string
		Departures []ctdf.Train
	}](t, body)
	assert.Equal(t, "Patliputra", departures.Station)
	require.Len(t, departures.Departures, 1)
	assert.Equal(t, "1003", departures.Departures[0].Identifier)
}

func TestRealtimeTrains(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/realtime/trains?line=blue", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, decode[[]ctdf.Train](t, body), 3)

	filter := url.QueryEscape(`Status == "delayed"`)
	response, body = server.do(t, http.MethodGet, "/core/realtime/trains?filter="+filter, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, decode[[]ctdf.Train](t, body), 2)

	response, _ = server.do(t, http.MethodGet, "/core/realtime/trains?filter="+url.QueryEscape("Status +"), nil)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestRealtimeGTFS(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/realtime/gtfs-rt", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "application/x-protobuf", response.Header.Get(fiber.HeaderContentType))

	var feed gtfs.FeedMessage
	require.NoError(t, proto.Unmarshal(body, &feed))
	assert.Len(t, feed.GetEntity(), 7)
}

func TestPlanner(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/planner/pj/dp?sort=fare&passengers=2", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	plan := decode[ctdf.JourneyPlanResults](t, body)
	assert.Equal(t, "Patna Junction", plan.OriginStation)
	assert.Equal(t, 2, plan.Passengers)
	require.Len(t, plan.RouteOptions, 4)
	assert.Equal(t, 25, plan.RouteOptions[0].Fare)
	assert.Equal(t, 50, plan.RouteOptions[0].TotalFare)

	response, body = server.do(t, http.MethodGet, "/core/planner/"+url.PathEscape("Patna Junction")+"/Danapur", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, 30, decode[ctdf.JourneyPlanResults](t, body).Fare)

	tests := []struct {
		path   string
		status int
	}{
		{"/core/planner/zz/dp", http.StatusNotFound},
		{"/core/planner/pj/zz", http.StatusNotFound},
		{"/core/planner/pj/dp?sort=scenic", http.StatusBadRequest},
		{"/core/planner/pj/dp?passengers=0", http.StatusBadRequest},
		{"/core/planner/pj/dp?category=vip", http.StatusBadRequest},
	}
	for _, test := range tests {
		response, _ := server.do(t, http.MethodGet, test.path, nil)
		assert.Equal(t, test.status, response.StatusCode, test.path)
	}
}

func TestFares(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/fares?from="+url.QueryEscape("Patna Junction")+"&to=Danapur", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	fare := decode[map[string]any](t, body)
	assert.EqualValues(t, 30, fare["Fare"])
	assert.Equal(t, "PT2H", fare["Validity"])

	response, body = server.do(t, http.MethodGet, "/core/fares?from=Nowhere&to=Danapur&category=tourist", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	fare = decode[map[string]any](t, body)
	assert.EqualValues(t, 50, fare["Fare"])
	assert.Equal(t, "P3D", fare["Validity"])

	response, _ = server.do(t, http.MethodGet, "/core/fares?from=Danapur&to=Patliputra&category=group&passengers=11", nil)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestCrowd(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/crowd/blue", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	forecast := decode[ctdf.CrowdForecast](t, body)
	assert.Equal(t, "blue", forecast.LineRef)
	assert.Len(t, forecast.Hourly, 24)
	assert.LessOrEqual(t, len(forecast.BestTimes), 3)
	assert.Len(t, forecast.Weekday, 7)

	response, _ = server.do(t, http.MethodGet, "/core/crowd/purple", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestLostFound(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/lost_found/categories", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, decode[[]string](t, body), 7)

	response, body = server.do(t, http.MethodGet, "/core/lost_found/items?category=Personal%20Items&status=pending", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	items := decode[[]map[string]any](t, body)
	require.Len(t, items, 1)
	assert.Equal(t, "Red Wallet", items[0]["Name"])
	assert.NotContains(t, items[0], "Contact")

	response, body = server.do(t, http.MethodPost, "/core/lost_found/reports", fiber.Map{
		"Name":     "Green Umbrella",
		"Category": "Other",
		"Station":  "Bailey Road",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	assert.Regexp(t, `^LF\d{5}$`, decode[ctdf.LostItem](t, body).Identifier)

	response, body = server.do(t, http.MethodGet, "/core/lost_found/items?q=umbrella", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, decode[[]ctdf.LostItem](t, body), 1)
}

func TestHelpline(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/helpline", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	content := decode[helpline.Content](t, body)
	assert.Len(t, content.Contacts, 4)

	response, body = server.do(t, http.MethodPost, "/core/helpline/feedback", fiber.Map{
		"Name":     "Demo User",
		"Category": "appreciation",
		"Message":  "Very clean trains",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	assert.Equal(t, "appreciation", decode[map[string]any](t, body)["Category"])
}

func TestAccountLoginAndProfile(t *testing.T) {
	server := newTestServer(t)

	response, _ := server.do(t, http.MethodPost, "/core/account/login", fiber.Map{
		"Email":    "user@example.com",
		"Password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	response, body := server.do(t, http.MethodPost, "/core/account/login", fiber.Map{
		"Email":    "user@example.com",
		"Password": "password",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	login := decode[loginResponse](t, body)
	assert.Equal(t, "Demo User", login.User.Name)
	assert.Equal(t, 150, login.User.Points)

	cookie := sessionCookie(response)
	require.NotNil(t, cookie)

	response, body = server.do(t, http.MethodGet, "/core/account/profile", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "user@example.com", decode[ctdf.User](t, body).Email)

	response, _ = server.do(t, http.MethodGet, "/core/account/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	response, _ = server.do(t, http.MethodPost, "/core/account/logout", nil, withCookie(cookie))
	assert.Equal(t, http.StatusOK, response.StatusCode)

	response, _ = server.do(t, http.MethodGet, "/core/account/profile", nil, withCookie(cookie))
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	server := newTestServer(t)

	token, _ := server.login(t, "user@example.com")
	otherToken, _ := server.login(t, "user@example.com")

	response, _ := server.do(t, http.MethodGet, "/core/cards/balance", nil, withToken(token))
	require.Equal(t, http.StatusOK, response.StatusCode)

	response, _ = server.do(t, http.MethodPost, "/core/account/logout", nil, withToken(token))
	assert.Equal(t, http.StatusOK, response.StatusCode)

	response, body := server.do(t, http.MethodGet, "/core/cards/balance", nil, withToken(token))
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
	assert.Contains(t, string(body), "revoked")

	response, _ = server.do(t, http.MethodGet, "/core/tickets/history", nil, withToken(token))
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	// tokens from other logins stay valid
	response, _ = server.do(t, http.MethodGet, "/core/cards/balance", nil, withToken(otherToken))
	assert.Equal(t, http.StatusOK, response.StatusCode)

	// garbage tokens are ignored on logout
	response, _ = server.do(t, http.MethodPost, "/core/account/logout", nil, withToken("not-a-token"))
	assert.Equal(t, http.StatusOK, response.StatusCode)
}

func TestAccountSignup(t *testing.T) {
	server := newTestServer(t)

	form := fiber.Map{
		"Name":            "New Rider",
		"Email":           "rider@example.com",
		"Password":        "longenough",
		"ConfirmPassword": "different",
		"AcceptTerms":     true,
	}

	response, body := server.do(t, http.MethodPost, "/core/account/signup", form)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Contains(t, string(body), accounts.ErrPasswordMismatch.Error())

	form["ConfirmPassword"] = "longenough"
	response, body = server.do(t, http.MethodPost, "/core/account/signup", form)
	require.Equal(t, http.StatusCreated, response.StatusCode)
	signup := decode[loginResponse](t, body)
	assert.Equal(t, "New Rider", signup.User.Name)
	assert.Zero(t, signup.User.Points)
	assert.NotEmpty(t, signup.Token)

	response, _ = server.do(t, http.MethodPost, "/core/account/signup", form)
	assert.Equal(t, http.StatusConflict, response.StatusCode)
}

func TestPreferencesLanguage(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/preferences/language", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "en", decode[map[string]any](t, body)["Language"])

	cookie := sessionCookie(response)
	require.NotNil(t, cookie)

	response, _ = server.do(t, http.MethodPut, "/core/preferences/language", fiber.Map{"Language": "hi"}, withCookie(cookie))
	require.Equal(t, http.StatusOK, response.StatusCode)

	response, body = server.do(t, http.MethodGet, "/core/preferences/language", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "hi", decode[map[string]any](t, body)["Language"])
	assert.Nil(t, sessionCookie(response))

	response, _ = server.do(t, http.MethodPut, "/core/preferences/language", fiber.Map{"Language": "fr"}, withCookie(cookie))
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestTickets(t *testing.T) {
	server := newTestServer(t)

	response, body := server.do(t, http.MethodGet, "/core/tickets/quick", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, decode[[]ctdf.QuickPurchase](t, body), 3)

	checkout := fiber.Map{
		"From":          "Patna Junction",
		"To":            "Danapur",
		"Category":      "single",
		"Passengers":    1,
		"PaymentMethod": "metro-card",
	}

	response, _ = server.do(t, http.MethodPost, "/core/tickets/checkout", checkout)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	token, _ := server.login(t, "user@example.com")

	response, body = server.do(t, http.MethodPost, "/core/tickets/checkout", checkout, withToken(token))
	require.Equal(t, http.StatusCreated, response.StatusCode, string(body))
	ticket := decode[ctdf.Ticket](t, body)
	assert.Equal(t, 30, ticket.Fare)
	assert.Equal(t, ctdf.TicketStatusActive, ticket.Status)

	response, body = server.do(t, http.MethodGet, "/core/cards/balance", nil, withToken(token))
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.EqualValues(t, 120, decode[map[string]any](t, body)["Balance"])

	checkout["Category"] = "group"
	checkout["Passengers"] = 10
	response, body = server.do(t, http.MethodPost, "/core/tickets/checkout", checkout, withToken(token))
	assert.Equal(t, http.StatusPaymentRequired, response.StatusCode)
	assert.Contains(t, string(body), "recharge")

	response, body = server.do(t, http.MethodGet, "/core/cards/balance", nil, withToken(token))
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.EqualValues(t, 120, decode[map[string]any](t, body)["Balance"])

	checkout["Category"] = "first-class"
	response, _ = server.do(t, http.MethodPost, "/core/tickets/checkout", checkout, withToken(token))
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	checkout["Category"] = "single"
	checkout["Passengers"] = 1
	checkout["To"] = "Atlantis"
	response, body = server.do(t, http.MethodPost, "/core/tickets/checkout", checkout, withToken(token))
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Contains(t, string(body), "unknown station")

	response, body = server.do(t, http.MethodGet, "/core/tickets/history", nil, withToken(token))
	require.Equal(t, http.StatusOK, response.StatusCode)
	history := decode[[]ctdf.Ticket](t, body)
	require.Len(t, history, 4)
	assert.Equal(t, ticket.Identifier, history[0].Identifier)
}

func TestCardRecharge(t *testing.T) {
	server := newTestServer(t)

	token, _ := server.login(t, "user@example.com")

	response, _ := server.do(t, http.MethodPost, "/core/cards/recharge", fiber.Map{"Amount": 50}, withToken(token))
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	response, body := server.do(t, http.MethodPost, "/core/cards/recharge", fiber.Map{"Amount": 100}, withToken(token))
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.EqualValues(t, 250, decode[map[string]any](t, body)["Balance"])

	response, _ = server.do(t, http.MethodPost, "/core/cards/recharge", fiber.Map{"Amount": 1900}, withToken(token))
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	response, _ = server.do(t, http.MethodGet, "/core/cards/balance", nil)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestAdmin(t *testing.T) {
	server := newTestServer(t)

	userToken, _ := server.login(t, "user@example.com")
	adminToken, _ := server.login(t, "admin@example.com")

	response, _ := server.do(t, http.MethodGet, "/core/admin/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	response, _ = server.do(t, http.MethodGet, "/core/admin/dashboard", nil, withToken(userToken))
	assert.Equal(t, http.StatusForbidden, response.StatusCode)

	response, body := server.do(t, http.MethodGet, "/core/admin/dashboard", nil, withToken(adminToken))
	require.Equal(t, http.StatusOK, response.StatusCode)
	dashboard := decode[admin.Dashboard](t, body)
	assert.Equal(t, 2, dashboard.UserCount)
	assert.Len(t, dashboard.Alerts, 3)

	response, body = server.do(t, http.MethodGet, "/core/admin/users", nil, withToken(adminToken))
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, decode[admin.Users](t, body).Riders, 5)

	response, _ = server.do(t, http.MethodPost, "/core/admin/alerts", fiber.Map{"AlertType": "flood", "Message": "Water"}, withToken(adminToken))
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	response, _ = server.do(t, http.MethodPost, "/core/admin/alerts", fiber.Map{"AlertType": "crowd", "Message": "Match day at Gandhi Maidan"}, withToken(adminToken))
	assert.Equal(t, http.StatusCreated, response.StatusCode)

	response, body = server.do(t, http.MethodGet, "/core/service_alerts", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, decode[[]ctdf.ServiceAlert](t, body), 4)

	response, body = server.do(t, http.MethodGet, "/core/admin/export/riders", nil, withToken(adminToken))
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "text/csv", response.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.HasPrefix(string(body), "id,name,email,tickets,joined,status"))

	response, _ = server.do(t, http.MethodGet, "/core/admin/export/passwords", nil, withToken(adminToken))
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestTokenValidation(t *testing.T) {
	server := newTestServer(t)

	response, _ := server.do(t, http.MethodGet, "/core/tickets/history", nil, func(request *http.Request) {
		request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	})
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	response, _ = server.do(t, http.MethodGet, "/core/tickets/history", nil, withToken("not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	otherAuthority, err := NewTokenAuthority([]byte("another-secret"), "patnametro", time.Hour)
	require.NoError(t, err)
	forged, err := otherAuthority.Issue(&ctdf.User{Identifier: "2", IsAdmin: true})
	require.NoError(t, err)

	response, _ = server.do(t, http.MethodGet, "/core/admin/dashboard", nil, withToken(forged))
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	expiredAuthority, err := NewTokenAuthority([]byte("test-secret"), "patnametro", -2*time.Hour)
	require.NoError(t, err)
	expired, err := expiredAuthority.Issue(&ctdf.User{Identifier: "1"})
	require.NoError(t, err)

	response, _ = server.do(t, http.MethodGet, "/core/tickets/history", nil, withToken(expired))
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestMetrics(t *testing.T) {
	server := newTestServer(t)

	server.do(t, http.MethodGet, "/core/version", nil)

	response, body := server.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, string(body), "patnametro_http_requests_total")
}
