package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

const (
	// maxUploadBytes bounds the whole multipart product form.
	maxUploadBytes = 32 << 20
	// maxMemoryBytes is kept in memory while parsing; the rest spills to disk.
	maxMemoryBytes = 8 << 20

	productFormField = "product"
	imagesFormField  = "images"
)

// SellerHandler handles the seller panel HTTP requests.
type SellerHandler struct {
	service service.SellerService
	logger  zerolog.Logger
}

// NewSellerHandler creates a new seller handler.
func NewSellerHandler(service service.SellerService, logger zerolog.Logger) *SellerHandler {
	return &SellerHandler{
		service: service,
		logger:  logger.With().Str("handler", "seller").Logger(),
	}
}

// ListOrders handles GET /api/seller/orders requests.
func (h *SellerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), authContext(r))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.OrdersResponse{Orders: orders})
}

// UpdateOrderStatus handles PATCH /api/seller/orders requests.
func (h *SellerHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req model.StatusUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), authContext(r), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ListProducts handles GET /api/seller/products requests.
func (h *SellerHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), authContext(r))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /api/seller/products requests. The body is a
// multipart form with the product as JSON in the "product" field and up to
// four files in "images".
func (h *SellerHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, model.Errorf(model.ErrValidation, "Upload exceeds %d bytes", maxUploadBytes), h.logger)
			return
		}
		writeError(w, model.Errorf(model.ErrInvalidInput, "Expected a multipart form"), h.logger)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var req model.NewProductRequest
	if err := json.Unmarshal([]byte(r.FormValue(productFormField)), &req); err != nil {
		writeError(w, errInvalidJSON, h.logger)
		return
	}

	files := r.MultipartForm.File[imagesFormField]
	images := make([]storage.Image, 0, len(files))
	for _, fh := range files {
		img, closeFn, err := openImage(fh)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", fh.Filename).Msg("failed to open uploaded image")
			writeError(w, model.Errorf(model.ErrInvalidInput, "Unreadable image %q", fh.Filename), h.logger)
			return
		}
		defer closeFn()
		images = append(images, img)
	}

	product, err := h.service.CreateProduct(r.Context(), authContext(r), &req, images)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// UpdateInventory handles PUT /api/seller/products requests.
func (h *SellerHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	var req model.InventoryUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.UpdateInventory(r.Context(), authContext(r), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/seller/products?id= requests.
func (h *SellerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), authContext(r), r.URL.Query().Get("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted"})
}

// Dashboard handles GET /api/seller/dashboard requests.
func (h *SellerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context(), authContext(r))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func openImage(fh *multipart.FileHeader) (storage.Image, func() error, error) {
	f, err := fh.Open()
	if err != nil {
		return storage.Image{}, nil, err
	}
	return storage.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f.Close, nil
}
