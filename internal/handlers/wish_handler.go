package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dias221467/Wish_Collector/internal/models"
	"github.com/Dias221467/Wish_Collector/internal/repository"
	"github.com/Dias221467/Wish_Collector/internal/services"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxFormBytes = 1 << 20

type WishHandler struct {
	Service *services.WishService
	// SuccessRedirect is where browser submissions are sent after a successful save.
	// Empty disables redirects and every success is answered with 201 and JSON.
	SuccessRedirect string
}

func NewWishHandler(service *services.WishService, successRedirect string) *WishHandler {
	return &WishHandler{
		Service:         service,
		SuccessRedirect: successRedirect,
	}
}

// SubmitWishHandler accepts the wish form and stores it.
func (h *WishHandler) SubmitWishHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		logrus.WithError(err).Warn("Failed to parse wish form")
		http.Error(w, "Invalid form submission.", http.StatusBadRequest)
		return
	}

	input := models.WishInput{
		Wish:      r.PostFormValue("wish"),
		Category:  r.PostFormValue("category"),
		Timeframe: r.PostFormValue("timeframe"),
		Intensity: r.PostFormValue("intensity"),
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
	}

	created, err := h.Service.SubmitWish(r.Context(), input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Message, http.StatusBadRequest)
			return
		}

		fields := logrus.Fields{}
		var serr *repository.StoreError
		if errors.As(err, &serr) {
			fields["kind"] = serr.Kind
		}
		logrus.WithError(err).WithFields(fields).Error("Failed to save wish")
		http.Error(w, "Failed to save wish.", http.StatusInternalServerError)
		return
	}

	if h.SuccessRedirect != "" && !wantsJSON(r) {
		http.Redirect(w, r, successURL(h.SuccessRedirect, created.ID), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/wishes/"+created.ID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetWishesHandler returns every stored wish.
func (h *WishHandler) GetWishesHandler(w http.ResponseWriter, r *http.Request) {
	wishes, err := h.Service.ListWishes(r.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to load wishes")
		http.Error(w, "Failed to fetch wishes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wishes)
}

// GetWishByIDHandler retrieves a specific wish by ID.
func (h *WishHandler) GetWishByIDHandler(w http.ResponseWriter, r *http.Request) {
	wishID := mux.Vars(r)["id"]

	wish, err := h.Service.GetWish(r.Context(), wishID)
	if errors.Is(err, services.ErrWishNotFound) {
		http.Error(w, "Wish not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("wishID", wishID).Error("Failed to load wish")
		http.Error(w, "Failed to fetch wish", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wish)
}

// MethodNotAllowedHandler answers requests whose path exists under a different method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Method not allowed.", http.StatusMethodNotAllowed)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func successURL(target, id string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("success", "1")
	q.Set("id", id)
	u.RawQuery = q.Encode()
	return u.String()
}
