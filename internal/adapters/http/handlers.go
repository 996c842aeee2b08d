package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"tatami/internal/adapters/http/middleware"
	"tatami/internal/adapters/storage/systemconfig"
	"tatami/internal/application/listutil"
	"tatami/internal/application/orchestrators"
	"tatami/internal/application/projections"
	accountDomain "tatami/internal/domain/account"
	athleteDomain "tatami/internal/domain/athlete"
	categoryDomain "tatami/internal/domain/category"
	paymentDomain "tatami/internal/domain/payment"
	unitDomain "tatami/internal/domain/unit"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// birthDateLayout is the wire format for athlete birth dates.
const birthDateLayout = "2006-01-02"

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// requestErrors maps known domain and orchestration failures to 4xx
// responses. Anything unlisted is treated as internal.
var requestErrors = map[error]int{
	orchestrators.ErrEmailTaken:          http.StatusConflict,
	orchestrators.ErrAlreadyEnrolled:     http.StatusConflict,
	orchestrators.ErrPartnerEnrolled:     http.StatusConflict,
	orchestrators.ErrPartnerForSolo:      http.StatusBadRequest,
	orchestrators.ErrAthleteNotOwned:     http.StatusForbidden,
	orchestrators.ErrAthleteNotInUnit:    http.StatusForbidden,
	orchestrators.ErrRegNotOwned:         http.StatusForbidden,
	paymentDomain.ErrAlreadyConfirmed:    http.StatusConflict,
	categoryDomain.ErrRangesNotAscending: http.StatusBadRequest,
	categoryDomain.ErrRangeBelowMaster:   http.StatusBadRequest,
}

// respondError writes a mapped client error, validation failure, or a
// generic 500 for everything else.
func respondError(w http.ResponseWriter, err error) {
	for known, status := range requestErrors {
		if errors.Is(err, known) {
			writeJSON(w, status, map[string]string{"error": known.Error()})
			return
		}
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	internalError(w, err)
}

// validationErrors are domain validation failures surfaced as 400s.
var validationErrors = []error{
	accountDomain.ErrEmptyEmail,
	accountDomain.ErrInvalidEmail,
	accountDomain.ErrPasswordTooShort,
	unitDomain.ErrEmptyName,
	athleteDomain.ErrEmptyName,
	athleteDomain.ErrInvalidGender,
	athleteDomain.ErrInvalidWeight,
	athleteDomain.ErrZeroBirthDate,
	categoryDomain.ErrInvalidDivisionGender,
	categoryDomain.ErrUnknownAgeGroup,
	categoryDomain.ErrUnknownGender,
	categoryDomain.ErrNegativeWeight,
	paymentDomain.ErrEmptyProof,
}

// unitScope resolves the registration unit the request acts on. Unit
// accounts are pinned to their own unit; admins may pass ?unit_id=.
func unitScope(r *http.Request) (string, bool) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		return "", false
	}
	if session.Role == accountDomain.RoleAdmin {
		if id := r.URL.Query().Get("unit_id"); id != "" {
			return id, true
		}
		return "", false
	}
	return session.UnitID, session.UnitID != ""
}

// registerRoutes attaches all application routes to the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/signup", handleSignup)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/info", handleInfo)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	requireAdmin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireRole(accountDomain.RoleAdmin)(h)
	}

	mux.Handle("/api/athletes", requireAuth(handleAthletes))
	mux.Handle("/api/athletes/", requireAuth(handleAthleteByID))
	mux.Handle("/api/registrations", requireAuth(handleRegistrations))
	mux.Handle("/api/registrations/", requireAuth(handleRegistrationByID))
	mux.Handle("/api/fees", requireAuth(handleFees))
	mux.Handle("/api/payments", requireAuth(handlePayments))

	mux.Handle("/api/admin/overview", requireAdmin(handleAdminOverview))
	mux.Handle("/api/admin/age-ranges", requireAdmin(handleAdminAgeRanges))
	mux.Handle("/api/admin/recalculate", requireAdmin(handleAdminRecalculate))
	mux.Handle("/api/admin/payments", requireAdmin(handleAdminPayments))
	mux.Handle("/api/admin/payments/", requireAdmin(handleAdminConfirmPayment))
	mux.Handle("/api/admin/settings", requireAdmin(handleAdminSettings))
	mux.Handle("/api/admin/units", requireAdmin(handleAdminUnits))
	mux.Handle("/api/admin/perf", requireAdmin(handleAdminPerf))
}

// handleSignup handles POST /signup: creates a unit account and its
// registration unit in one step.
func handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.RegisterUnitInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Email = r.FormValue("Email")
		input.Password = r.FormValue("Password")
		input.Name = r.FormValue("Name")
		input.City = r.FormValue("City")
		input.ContactEmail = r.FormValue("ContactEmail")
		input.Phone = r.FormValue("Phone")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.RegisterUnitDeps{
		AccountStore: stores.AccountStore,
		UnitStore:    stores.UnitStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}
	result, err := orchestrators.ExecuteRegisterUnit(r.Context(), input, deps)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handleLogin handles POST /login: authenticates and sets the session cookie.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.LoginInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Email = r.FormValue("Email")
		input.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			status = http.StatusForbidden
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	unitID := ""
	if result.Role == accountDomain.RoleUnit {
		u, err := stores.UnitStore.GetByAccountID(r.Context(), result.AccountID)
		if err != nil {
			internalError(w, err)
			return
		}
		unitID = u.ID
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role, unitID)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"AccountID": result.AccountID,
		"Role":      result.Role,
		"UnitID":    unitID,
	})
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleInfo handles GET /info: the public tournament info page. The
// admin-maintained markdown is rendered server-side for browsers and
// returned raw for API clients.
func handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s, err := settings.Get(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(s.InfoMarkdown), &buf); err != nil {
			internalError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Tournament Info</title></head><body>%s</body></html>", buf.String())
		return
	}

	competitionDate := ""
	if !s.CompetitionDate.IsZero() {
		competitionDate = s.CompetitionDate.Format(birthDateLayout)
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"InfoMarkdown":    s.InfoMarkdown,
		"CompetitionDate": competitionDate,
	})
}

// handleAthletes handles GET (list) and POST (register) for /api/athletes.
func handleAthletes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unitID, ok := unitScope(r)
	if !ok {
		http.Error(w, "unit_id is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		params := listutil.Parse(r.URL.Query(), projections.UnitAthleteSortCols())
		result, err := projections.QueryGetUnitAthletes(ctx, projections.GetUnitAthletesQuery{
			UnitID: unitID,
			Params: params,
		}, projections.GetUnitAthletesDeps{
			AthleteStore:      stores.AthleteStore,
			RegistrationStore: stores.RegistrationStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)

	case "POST":
		input, err := decodeAthleteInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		input.UnitID = unitID

		id, err := orchestrators.ExecuteRegisterAthlete(ctx, input, athleteDeps())
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"AthleteID": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// decodeAthleteInput reads athlete fields from a form or JSON body.
func decodeAthleteInput(r *http.Request) (orchestrators.RegisterAthleteInput, error) {
	var input orchestrators.RegisterAthleteInput

	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			return input, errors.New("invalid form submission")
		}
		input.Name = r.FormValue("Name")
		input.Gender = r.FormValue("Gender")
		weight, err := strconv.ParseFloat(r.FormValue("WeightKg"), 64)
		if err != nil {
			return input, errors.New("WeightKg must be a number")
		}
		input.WeightKg = weight
		birth, err := time.Parse(birthDateLayout, r.FormValue("BirthDate"))
		if err != nil {
			return input, errors.New("BirthDate must be YYYY-MM-DD")
		}
		input.BirthDate = birth
		return input, nil
	}

	var body struct {
		Name      string
		BirthDate string
		Gender    string
		WeightKg  float64
	}
	if err := strictDecode(r, &body); err != nil {
		return input, errors.New("invalid request")
	}
	birth, err := time.Parse(birthDateLayout, body.BirthDate)
	if err != nil {
		return input, errors.New("BirthDate must be YYYY-MM-DD")
	}
	input.Name = body.Name
	input.Gender = body.Gender
	input.WeightKg = body.WeightKg
	input.BirthDate = birth
	return input, nil
}

func athleteDeps() orchestrators.RegisterAthleteDeps {
	return orchestrators.RegisterAthleteDeps{
		AthleteStore: stores.AthleteStore,
		Settings:     settings,
		GenerateID:   generateID,
		Now:          timeNow,
	}
}

// handleAthleteByID handles PUT (update) and DELETE for /api/athletes/{id}.
func handleAthleteByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	athleteID := strings.TrimPrefix(r.URL.Path, "/api/athletes/")
	if athleteID == "" || strings.Contains(athleteID, "/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	unitID, ok := unitScope(r)
	if !ok {
		http.Error(w, "unit_id is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "PUT":
		regInput, err := decodeAthleteInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		input := orchestrators.UpdateAthleteInput{
			AthleteID: athleteID,
			UnitID:    unitID,
			Name:      regInput.Name,
			BirthDate: regInput.BirthDate,
			Gender:    regInput.Gender,
			WeightKg:  regInput.WeightKg,
		}
		if err := orchestrators.ExecuteUpdateAthlete(ctx, input, athleteDeps()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "DELETE":
		a, err := stores.AthleteStore.GetByID(ctx, athleteID)
		if err != nil {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if a.UnitID != unitID {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		// Withdraw the athlete's registrations first so no orphaned
		// rows or half-teams remain.
		regs, err := stores.RegistrationStore.ListByUnitID(ctx, unitID)
		if err != nil {
			internalError(w, err)
			return
		}
		for _, reg := range regs {
			if reg.AthleteID != athleteID {
				continue
			}
			err := orchestrators.ExecuteWithdrawRegistration(ctx, orchestrators.WithdrawRegistrationInput{
				UnitID:         unitID,
				RegistrationID: reg.ID,
			}, enrollDeps())
			if err != nil {
				internalError(w, err)
				return
			}
		}
		if err := stores.AthleteStore.Delete(ctx, athleteID); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func enrollDeps() orchestrators.EnrollRegistrationDeps {
	return orchestrators.EnrollRegistrationDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
		EventTypeStore:    stores.EventTypeStore,
		GenerateID:        generateID,
		Now:               timeNow,
	}
}

// handleRegistrations handles POST /api/registrations: enrolls an
// athlete (and optionally a partner) in an event.
func handleRegistrations(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	unitID, ok := unitScope(r)
	if !ok {
		http.Error(w, "unit_id is required", http.StatusBadRequest)
		return
	}

	input := orchestrators.EnrollRegistrationInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.AthleteID = r.FormValue("AthleteID")
		input.EventTypeID = r.FormValue("EventTypeID")
		input.TeamPartnerID = r.FormValue("TeamPartnerID")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}
	input.UnitID = unitID

	id, err := orchestrators.ExecuteEnrollRegistration(r.Context(), input, enrollDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"RegistrationID": id})
}

// handleRegistrationByID handles DELETE /api/registrations/{id}.
func handleRegistrationByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	registrationID := strings.TrimPrefix(r.URL.Path, "/api/registrations/")
	if registrationID == "" || strings.Contains(registrationID, "/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	unitID, ok := unitScope(r)
	if !ok {
		http.Error(w, "unit_id is required", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteWithdrawRegistration(r.Context(), orchestrators.WithdrawRegistrationInput{
		UnitID:         unitID,
		RegistrationID: registrationID,
	}, enrollDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFees handles GET /api/fees: the unit's live fee breakdown.
func handleFees(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	unitID, ok := unitScope(r)
	if !ok {
		http.Error(w, "unit_id is required", http.StatusBadRequest)
		return
	}

	result, err := projections.QueryGetFeeSummary(r.Context(), projections.GetFeeSummaryQuery{
		UnitID: unitID,
	}, projections.GetFeeSummaryDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
		EventTypeStore:    stores.EventTypeStore,
		PaymentStore:      stores.PaymentStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePayments handles POST /api/payments: submits payment proof for
// the unit's current fee total.
func handlePayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	unitID, ok := unitScope(r)
	if !ok {
		http.Error(w, "unit_id is required", http.StatusBadRequest)
		return
	}

	input := orchestrators.SubmitPaymentInput{UnitID: unitID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ProofRef = r.FormValue("ProofRef")
	} else {
		var body struct{ ProofRef string }
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.ProofRef = body.ProofRef
	}

	id, err := orchestrators.ExecuteSubmitPayment(r.Context(), input, orchestrators.SubmitPaymentDeps{
		PaymentStore:      stores.PaymentStore,
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
		EventTypeStore:    stores.EventTypeStore,
		GenerateID:        generateID,
		Now:               timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"PaymentID": id})
}

// handleAdminOverview handles GET /api/admin/overview: every bracket
// with its entries, optionally filtered by ?event=<key>.
func handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetCategoryOverview(r.Context(), projections.GetCategoryOverviewQuery{
		EventTypeKey: r.URL.Query().Get("event"),
	}, projections.GetCategoryOverviewDeps{
		RegistrationStore: stores.RegistrationStore,
		AthleteStore:      stores.AthleteStore,
		EventTypeStore:    stores.EventTypeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleAdminAgeRanges handles GET (current ranges) and PUT (update)
// for /api/admin/age-ranges.
func handleAdminAgeRanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		ranges, err := settings.AgeRanges(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ranges)

	case "PUT":
		var ranges categoryDomain.AgeRanges
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			fields := map[string]*int{
				"M1MinAge": &ranges.M1MinAge,
				"M1MaxAge": &ranges.M1MaxAge,
				"M2MinAge": &ranges.M2MinAge,
				"M2MaxAge": &ranges.M2MaxAge,
				"M3MinAge": &ranges.M3MinAge,
			}
			for name, dst := range fields {
				n, err := strconv.Atoi(r.FormValue(name))
				if err != nil {
					http.Error(w, name+" must be a number", http.StatusBadRequest)
					return
				}
				*dst = n
			}
		} else {
			if err := strictDecode(r, &ranges); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		err := orchestrators.ExecuteUpdateAgeRanges(ctx, orchestrators.UpdateAgeRangesInput{
			Ranges: ranges,
		}, orchestrators.UpdateAgeRangesDeps{Settings: settings})
		if err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminRecalculate handles POST /api/admin/recalculate: restamps
// every athlete's classification from the current settings.
func handleAdminRecalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	changed, err := orchestrators.ExecuteRecalculateClassifications(r.Context(), orchestrators.RecalculateClassificationsDeps{
		AthleteStore: stores.AthleteStore,
		Settings:     settings,
		Now:          timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"Changed": changed})
}

// handleAdminPayments handles GET /api/admin/payments?status=<status>.
func handleAdminPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = paymentDomain.StatusPaid
	}
	payments, err := stores.PaymentStore.ListByStatus(r.Context(), status)
	if err != nil {
		internalError(w, err)
		return
	}
	if payments == nil {
		payments = []paymentDomain.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

// handleAdminConfirmPayment handles POST /api/admin/payments/{id}/confirm.
func handleAdminConfirmPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/payments/")
	paymentID, action, found := strings.Cut(rest, "/")
	if !found || action != "confirm" || paymentID == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	session, _ := middleware.GetSessionFromContext(r.Context())

	err := orchestrators.ExecuteConfirmPayment(r.Context(), orchestrators.ConfirmPaymentInput{
		PaymentID: paymentID,
		AdminID:   session.AccountID,
	}, orchestrators.ConfirmPaymentDeps{
		PaymentStore: stores.PaymentStore,
		UnitStore:    stores.UnitStore,
		EmailSender:  emailSender,
		EmailFrom:    emailFromAddress,
		EmailReplyTo: emailReplyTo,
		Now:          timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminSettings handles PUT /api/admin/settings: competition date
// and the public info markdown.
func handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != "PUT" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var body struct {
		CompetitionDate string
		InfoMarkdown    string
	}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		body.CompetitionDate = r.FormValue("CompetitionDate")
		body.InfoMarkdown = r.FormValue("InfoMarkdown")
	} else {
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	if body.CompetitionDate != "" {
		if _, err := time.Parse(birthDateLayout, body.CompetitionDate); err != nil {
			http.Error(w, "CompetitionDate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if err := stores.SystemConfigStore.Set(ctx, systemconfig.KeyCompetitionDate, body.CompetitionDate); err != nil {
			internalError(w, err)
			return
		}
	}
	if body.InfoMarkdown != "" {
		if err := stores.SystemConfigStore.Set(ctx, systemconfig.KeyInfoMarkdown, body.InfoMarkdown); err != nil {
			internalError(w, err)
			return
		}
	}
	settings.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminUnits handles GET /api/admin/units.
func handleAdminUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	units, err := stores.UnitStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	if units == nil {
		units = []unitDomain.Unit{}
	}
	writeJSON(w, http.StatusOK, units)
}

// handleAdminPerf handles GET /api/admin/perf: a snapshot of request
// and query timings for the last hour.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusServiceUnavailable)
		return
	}

	topN := 10
	if v := r.URL.Query().Get("top"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			topN = n
		}
	}
	snap := perfCollector.Snapshot(timeNow().Add(-time.Hour), topN)
	writeJSON(w, http.StatusOK, snap)
}
