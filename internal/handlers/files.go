package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/thsteixeira/precatorios/internal/models"
)

const maxArquivoSize = 50 << 20

var allowedArquivoExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".xlsx": true,
}

// UploadArquivo stores the precatório attachment. A previous attachment is
// replaced and its object removed.
func (h *Handlers) UploadArquivo(w http.ResponseWriter, r *http.Request) {
	cnj := chi.URLParam(r, "cnj")

	p, err := h.Precatorios.GetByCNJ(r.Context(), cnj)
	if err != nil {
		h.Error(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxArquivoSize); err != nil {
		h.Logger.Printf("[ARQUIVO][ERR] parse multipart: %v", err)
		h.BadRequest(w, "bad multipart: "+err.Error())
		return
	}
	f, fh, err := r.FormFile("arquivo")
	if err != nil {
		f, fh, err = r.FormFile("file")
	}
	if err != nil {
		h.BadRequest(w, "arquivo é obrigatório")
		return
	}
	defer f.Close()

	if fh.Size > maxArquivoSize {
		h.BadRequest(w, "arquivo excede o limite de 50MB")
		return
	}
	fname := path.Base(fh.Filename)
	ext := strings.ToLower(path.Ext(fname))
	if !allowedArquivoExt[ext] {
		h.BadRequest(w, "extensão não permitida: "+ext)
		return
	}

	key := fmt.Sprintf("precatorios/%s/%s-%s", cnj, uuid.NewString(), fname)
	obj, err := h.Storage.Put(r.Context(), key, f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Error(w, err)
		return
	}

	arq := &models.Arquivo{
		Key:         obj.Key,
		Nome:        fname,
		Tamanho:     obj.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}
	if err := h.Precatorios.SetArquivo(r.Context(), cnj, arq); err != nil {
		h.Error(w, err)
		return
	}

	// replaced attachment becomes an orphan object
	if p.Arquivo != nil && p.Arquivo.Key != "" && p.Arquivo.Key != obj.Key {
		if err := h.Storage.Delete(r.Context(), p.Arquivo.Key); err != nil {
			h.Logger.Printf("[ARQUIVO][WARN] remove old object %q: %v", p.Arquivo.Key, err)
		}
	}

	h.Logger.Printf("[ARQUIVO][UPLOAD] cnj=%s key=%q size=%d", cnj, obj.Key, obj.Size)
	h.JSON(w, http.StatusCreated, map[string]any{
		"nome":    arq.Nome,
		"tamanho": arq.Tamanho,
	})
}

// DownloadArquivo redirects to a presigned URL when the backend supports it,
// otherwise streams the object with an attachment disposition.
func (h *Handlers) DownloadArquivo(w http.ResponseWriter, r *http.Request) {
	cnj := chi.URLParam(r, "cnj")

	p, err := h.Precatorios.GetByCNJ(r.Context(), cnj)
	if err != nil {
		h.Error(w, err)
		return
	}
	if p.Arquivo == nil || p.Arquivo.Key == "" {
		h.JSON(w, http.StatusNotFound, map[string]string{"error": "precatório não possui arquivo"})
		return
	}

	url, err := h.Storage.PresignDownload(r.Context(), p.Arquivo.Key, p.Arquivo.Nome)
	if err != nil {
		h.Error(w, err)
		return
	}
	if url != "" {
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	rc, obj, err := h.Storage.Get(r.Context(), p.Arquivo.Key)
	if err != nil {
		h.Error(w, err)
		return
	}
	defer rc.Close()

	ct := p.Arquivo.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Arquivo.Nome))
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Printf("[ARQUIVO][ERR] stream cnj=%s: %v", cnj, err)
	}
}

func (h *Handlers) DeleteArquivo(w http.ResponseWriter, r *http.Request) {
	cnj := chi.URLParam(r, "cnj")

	p, err := h.Precatorios.GetByCNJ(r.Context(), cnj)
	if err != nil {
		h.Error(w, err)
		return
	}
	if p.Arquivo == nil || p.Arquivo.Key == "" {
		h.JSON(w, http.StatusNotFound, map[string]string{"error": "precatório não possui arquivo"})
		return
	}

	key := p.Arquivo.Key
	if err := h.Storage.Delete(r.Context(), key); err != nil {
		h.Error(w, err)
		return
	}
	if err := h.Precatorios.SetArquivo(r.Context(), cnj, nil); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[ARQUIVO][DELETE] cnj=%s key=%q", cnj, key)
	w.WriteHeader(http.StatusNoContent)
}
