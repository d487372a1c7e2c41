package tools

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/file-lab/internal/anchor"
	"github.com/JaimeStill/file-lab/internal/files"
	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/raster"
	"github.com/JaimeStill/file-lab/pkg/handlers"
	"github.com/JaimeStill/file-lab/pkg/routes"
)

// Handler defaults.
const (
	DefaultOpacity       = 0.5
	DefaultMaxUploadSize = 100 << 20
	DefaultMaxFiles      = 20
)

// Limits bounds uploads accepted by the Handler.
type Limits struct {
	MaxUploadSize int64
	MaxFiles      int
}

// Handler provides HTTP endpoints for the tool operations.
type Handler struct {
	sys    System
	logger *slog.Logger
	limits Limits
	cfg    Config
}

// NewHandler creates a tools handler.
func NewHandler(sys System, logger *slog.Logger, limits Limits, cfg Config) *Handler {
	if limits.MaxUploadSize <= 0 {
		limits.MaxUploadSize = DefaultMaxUploadSize
	}
	if limits.MaxFiles <= 0 {
		limits.MaxFiles = DefaultMaxFiles
	}
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "tools"),
		limits: limits,
		cfg:    cfg,
	}
}

// Routes returns the tools endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/tools",
		Tags:        []string{"Tools"},
		Description: "File transformation tools",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/templates", Handler: h.Templates, OpenAPI: Spec.Templates},
		},
		Children: []routes.Group{
			{
				Prefix:      "/images",
				Tags:        []string{"Images"},
				Description: "Raster image tools",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/compress", Handler: h.CompressImage, OpenAPI: Spec.CompressImage},
					{Method: "POST", Pattern: "/convert", Handler: h.ConvertFormat, OpenAPI: Spec.ConvertFormat},
					{Method: "POST", Pattern: "/resize", Handler: h.ResizeForTemplate, OpenAPI: Spec.ResizeForTemplate},
					{Method: "POST", Pattern: "/watermark", Handler: h.WatermarkImage, OpenAPI: Spec.WatermarkImage},
					{Method: "POST", Pattern: "/heic-batch", Handler: h.ConvertHEICBatch, OpenAPI: Spec.ConvertHEICBatch},
				},
			},
			{
				Prefix:      "/pdf",
				Tags:        []string{"PDF"},
				Description: "PDF tools",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/compress", Handler: h.CompressPDF, OpenAPI: Spec.CompressPDF},
					{Method: "POST", Pattern: "/merge", Handler: h.MergePDF, OpenAPI: Spec.MergePDF},
					{Method: "POST", Pattern: "/split", Handler: h.SplitPDF, OpenAPI: Spec.SplitPDF},
					{Method: "POST", Pattern: "/protect", Handler: h.ProtectPDF, OpenAPI: Spec.ProtectPDF},
					{Method: "POST", Pattern: "/watermark", Handler: h.WatermarkPDF, OpenAPI: Spec.WatermarkPDF},
					{Method: "POST", Pattern: "/thumbnails", Handler: h.Thumbnails, OpenAPI: Spec.Thumbnails},
					{Method: "POST", Pattern: "/info", Handler: h.PDFInfo, OpenAPI: Spec.PDFInfo},
				},
			},
		},
	}
}

func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Templates())
}

func (h *Handler) CompressImage(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	opts := CompressOptions{}
	if opts.Quality, err = formOptionalFloat(r, "quality"); err != nil {
		h.fail(w, logger, err)
		return
	}
	if opts.Format, err = formFormat(r, "format"); err != nil {
		h.fail(w, logger, err)
		return
	}

	res, err := h.sys.CompressImage(r.Context(), in, opts)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	writeSizes(w, res)
	handlers.RespondFile(w, http.StatusOK, res.Name, res.MIME, res.Data)
}

func (h *Handler) ConvertFormat(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	opts := ConvertOptions{}
	if opts.Quality, err = formOptionalFloat(r, "quality"); err != nil {
		h.fail(w, logger, err)
		return
	}
	if opts.Format, err = formFormat(r, "format"); err != nil {
		h.fail(w, logger, err)
		return
	}

	res, err := h.sys.ConvertFormat(r.Context(), in, opts)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	writeSizes(w, res)
	handlers.RespondFile(w, http.StatusOK, res.Name, res.MIME, res.Data)
}

func (h *Handler) ResizeForTemplate(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	out, err := h.sys.ResizeForTemplate(r.Context(), in, r.FormValue("template"))
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	handlers.RespondFile(w, http.StatusOK, out.Name, out.MIME, out.Data)
}

func (h *Handler) WatermarkImage(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	opts := ImageWatermarkOptions{
		Text:  r.FormValue("text"),
		Color: r.FormValue("color"),
	}

	if mark, ok, err := h.optionalFile(r, "mark"); err != nil {
		h.fail(w, logger, err)
		return
	} else if ok {
		opts.Image = mark.Data
	}

	if opts.Opacity, err = formFloat(r, "opacity", DefaultOpacity); err != nil {
		h.fail(w, logger, err)
		return
	}
	if opts.FontSize, err = formFloat(r, "font_size", 0); err != nil {
		h.fail(w, logger, err)
		return
	}
	if opts.Position, err = anchor.ParsePosition(r.FormValue("position")); err != nil {
		h.fail(w, logger, err)
		return
	}
	if opts.Format, err = formFormat(r, "format"); err != nil {
		h.fail(w, logger, err)
		return
	}
	if opts.Preview, err = formBool(r, "preview"); err != nil {
		h.fail(w, logger, err)
		return
	}

	out, err := h.sys.WatermarkImage(r.Context(), in, opts)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	handlers.RespondFile(w, http.StatusOK, out.Name, out.MIME, out.Data)
}

func (h *Handler) ConvertHEICBatch(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	inputs, err := h.uploads(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	quality, err := formOptionalFloat(r, "quality")
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	out, err := h.sys.ConvertHEICBatch(r.Context(), inputs, quality)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	handlers.RespondFile(w, http.StatusOK, out.Name, out.MIME, out.Data)
}

func (h *Handler) CompressPDF(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	quality, err := pdf.ParseQuality(r.FormValue("quality"))
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	res, err := h.sys.CompressPDF(r.Context(), in, quality)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	writeSizes(w, res)
	handlers.RespondFile(w, http.StatusOK, res.Name, res.MIME, res.Data)
}

func (h *Handler) MergePDF(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	inputs, err := h.uploads(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	out, err := h.sys.MergePDF(r.Context(), inputs)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	handlers.RespondFile(w, http.StatusOK, out.Name, out.MIME, out.Data)
}

func (h *Handler) SplitPDF(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	count, err := pdf.PageCount(in.Data)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	indices, err := ParsePages(r.FormValue("pages"), count)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	out, err := h.sys.SplitPDF(r.Context(), in, indices)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	handlers.RespondFile(w, http.StatusOK, out.Name, out.MIME, out.Data)
}

func (h *Handler) ProtectPDF(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	opts := ProtectOptions{
		UserPassword:  r.FormValue("password"),
		OwnerPassword: r.FormValue("owner_password"),
	}
	if v := r.FormValue("mode"); v != "" {
		if opts.Mode, err = pdf.ParseMode(v); err != nil {
			h.fail(w, logger, err)
			return
		}
	}
	if v := r.FormValue("permissions"); v != "" {
		if opts.Permissions, err = pdf.ParsePermissions(v); err != nil {
			h.fail(w, logger, err)
			return
		}
	}

	res, err := h.sys.ProtectPDF(r.Context(), in, opts)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	w.Header().Set("X-Protection-Mode", string(res.Info.Mode))
	w.Header().Set("X-Protection-Encrypted", strconv.FormatBool(res.Info.Encrypted))
	w.Header().Set("X-Protection-Strength", string(res.Info.Strength))
	w.Header().Set("X-Protection-Notice", res.Info.Notice)
	if res.Info.Algorithm != "" {
		w.Header().Set("X-Protection-Algorithm", res.Info.Algorithm)
	}
	handlers.RespondFile(w, http.StatusOK, res.Name, res.MIME, res.Data)
}

func (h *Handler) WatermarkPDF(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	opts := pdf.WatermarkOptions{Text: r.FormValue("text")}

	if opts.Opacity, err = formFloat(r, "opacity", DefaultOpacity); err != nil {
		h.fail(w, logger, err)
		return
	}
	if opts.FontSize, err = formInt(r, "font_size", 0); err != nil {
		h.fail(w, logger, err)
		return
	}
	if opts.Position, err = anchor.ParsePosition(r.FormValue("position")); err != nil {
		h.fail(w, logger, err)
		return
	}
	if v := r.FormValue("color"); v != "" {
		c, err := raster.ParseColor(v)
		if err != nil {
			h.fail(w, logger, fmt.Errorf("%w: %w", ErrInvalidInput, err))
			return
		}
		opts.Color = c
	}

	out, err := h.sys.WatermarkPDF(r.Context(), in, opts)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	handlers.RespondFile(w, http.StatusOK, out.Name, out.MIME, out.Data)
}

func (h *Handler) Thumbnails(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	width, err := formInt(r, "width", h.cfg.ThumbnailWidth)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	thumbs, err := h.sys.Thumbnails(r.Context(), in, width)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, thumbs)
}

func (h *Handler) PDFInfo(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	in, err := h.upload(w, r)
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	info, err := h.sys.PDFInfo(r.Context(), in, r.FormValue("password"))
	if err != nil {
		h.fail(w, logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, info)
}

func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	id := r.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	return h.logger.With("request_id", id, "path", r.URL.Path)
}

func (h *Handler) fail(w http.ResponseWriter, logger *slog.Logger, err error) {
	handlers.RespondError(w, logger, MapHTTPStatus(err), err)
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	if r.MultipartForm != nil {
		return nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxUploadSize*int64(h.limits.MaxFiles)+(1<<20))
	if err := r.ParseMultipartForm(h.limits.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrFileTooLarge
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) (files.Buffer, error) {
	if err := h.parseForm(w, r); err != nil {
		return files.Buffer{}, err
	}

	in, ok, err := h.optionalFile(r, "file")
	if err != nil {
		return files.Buffer{}, err
	}
	if !ok {
		return files.Buffer{}, fmt.Errorf("%w: file field is required", ErrInvalidInput)
	}
	return in, nil
}

func (h *Handler) optionalFile(r *http.Request, field string) (files.Buffer, bool, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return files.Buffer{}, false, nil
	}

	in, err := h.read(r.MultipartForm.File[field][0])
	return in, err == nil, err
}

func (h *Handler) uploads(w http.ResponseWriter, r *http.Request) ([]files.Buffer, error) {
	if err := h.parseForm(w, r); err != nil {
		return nil, err
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: files field is required", ErrInvalidInput)
	}
	if len(headers) > h.limits.MaxFiles {
		return nil, fmt.Errorf("%w: %d files, limit is %d", ErrTooManyFiles, len(headers), h.limits.MaxFiles)
	}

	inputs := make([]files.Buffer, len(headers))
	for i, header := range headers {
		in, err := h.read(header)
		if err != nil {
			return nil, err
		}
		inputs[i] = in
	}
	return inputs, nil
}

func (h *Handler) read(header *multipart.FileHeader) (files.Buffer, error) {
	if header.Size > h.limits.MaxUploadSize {
		return files.Buffer{}, fmt.Errorf("%w: %s is %s", ErrFileTooLarge, header.Filename, files.HumanSize(header.Size))
	}

	f, err := header.Open()
	if err != nil {
		return files.Buffer{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return files.Buffer{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(data) == 0 {
		return files.Buffer{}, fmt.Errorf("%w: %s is empty", ErrInvalidInput, header.Filename)
	}

	return files.New(data, header.Header.Get("Content-Type"), header.Filename), nil
}

func writeSizes(w http.ResponseWriter, res *CompressionResult) {
	w.Header().Set("X-Original-Size", strconv.FormatInt(res.OriginalSize, 10))
	w.Header().Set("X-Output-Size", strconv.FormatInt(res.OutputSize, 10))
	w.Header().Set("X-Savings-Percent", strconv.Itoa(res.SavingsPercent))
}

func formFloat(r *http.Request, key string, def float64) (float64, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidInput, key)
	}
	return f, nil
}

func formOptionalFloat(r *http.Request, key string) (*float64, error) {
	if strings.TrimSpace(r.FormValue(key)) == "" {
		return nil, nil
	}
	f, err := formFloat(r, key, 0)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func formInt(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidInput, key)
	}
	return n, nil
}

func formBool(r *http.Request, key string) (bool, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidInput, key)
	}
	return b, nil
}

func formFormat(r *http.Request, key string) (raster.Format, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return "", nil
	}
	return raster.ParseFormat(v)
}
