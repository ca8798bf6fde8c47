// Package admin implements the product management workflows of the admin
// panel. Each workflow is one round-trip to the product store or the
// object bucket; nothing is wrapped in a transaction and concurrent admins
// overwrite each other.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"urbantide.com/store/internal/modules/products"
	"urbantide.com/store/internal/shared/apperr"
	"urbantide.com/store/internal/storage"
	"urbantide.com/store/pkg/view"
)

// DeleteAllPhrase must be typed to confirm wiping the catalog.
const DeleteAllPhrase = "EXCLUIR TUDO"

type Options struct {
	Bucket     string
	PendingTTL time.Duration
}

type Service struct {
	store   products.Store
	storage storage.Storage
	pending *PendingDeletes
	bucket  string
	log     *slog.Logger
	now     func() time.Time
}

func NewService(store products.Store, st storage.Storage, opts Options, l *slog.Logger) *Service {
	if l == nil {
		l = slog.Default()
	}
	return &Service{
		store:   store,
		storage: st,
		pending: NewPendingDeletes(opts.PendingTTL),
		bucket:  opts.Bucket,
		log:     l,
		now:     time.Now,
	}
}

func success(msg string) view.Flash { return view.Flash{Kind: view.FlashSuccess, Message: msg} }

func (s *Service) List(ctx context.Context) ([]products.Product, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.GatewayErr("Erro ao carregar produtos: ", err)
	}
	return items, nil
}

// Save validates the draft and upserts it. A draft without id is created.
func (s *Service) Save(ctx context.Context, d products.Draft) (products.Product, view.Flash, error) {
	p, err := d.Product(s.now())
	if err != nil {
		return products.Product{}, view.Flash{}, err
	}
	if err := s.store.Upsert(ctx, p); err != nil {
		return products.Product{}, view.Flash{}, apperr.GatewayErr("Erro ao salvar: ", err)
	}
	s.log.Info("product saved", slog.String("product_id", p.ID), slog.String("ref", p.Ref))
	return p, success("Produto salvo com sucesso!"), nil
}

// Delete removes a product. Deleting an id that does not exist succeeds.
// Images the product had in the bucket are removed afterwards, best effort.
func (s *Service) Delete(ctx context.Context, id string) (view.Flash, error) {
	var images []string
	switch p, err := s.store.Get(ctx, id); {
	case err == nil:
		images = gallery(p)
	case !errors.Is(err, products.ErrNotFound):
		s.log.Warn("could not read product images before delete", slog.String("product_id", id), slog.Any("err", err))
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return view.Flash{}, apperr.GatewayErr("Erro ao excluir: ", err)
	}
	s.log.Info("product deleted", slog.String("product_id", id), slog.Int("purged", s.purge(ctx, images...)))
	return success("Produto excluído!"), nil
}

// RemoveImage drops url from a stored product's gallery and then deletes
// the object from the bucket, best effort. Removing the primary promotes
// the next image.
func (s *Service) RemoveImage(ctx context.Context, id, url string) (products.Product, view.Flash, error) {
	d, err := s.draft(ctx, id)
	if err != nil {
		return products.Product{}, view.Flash{}, err
	}
	if !d.RemoveImage(d.ImageIndex(url)) {
		return products.Product{}, view.Flash{}, imageNotFound()
	}
	p, _, err := s.Save(ctx, d)
	if err != nil {
		return products.Product{}, view.Flash{}, err
	}
	s.purge(ctx, url)
	return p, success("Imagem removida."), nil
}

// SetPrimaryImage makes url, already in the gallery, the product's primary
// image.
func (s *Service) SetPrimaryImage(ctx context.Context, id, url string) (products.Product, view.Flash, error) {
	d, err := s.draft(ctx, id)
	if err != nil {
		return products.Product{}, view.Flash{}, err
	}
	if d.ImageIndex(url) < 0 || !d.SetPrimary(url) {
		return products.Product{}, view.Flash{}, imageNotFound()
	}
	p, _, err := s.Save(ctx, d)
	if err != nil {
		return products.Product{}, view.Flash{}, err
	}
	return p, success("Imagem principal atualizada."), nil
}

func (s *Service) draft(ctx context.Context, id string) (products.Draft, error) {
	p, err := s.store.Get(ctx, id)
	if errors.Is(err, products.ErrNotFound) {
		return products.Draft{}, apperr.NotFoundErr("Produto não encontrado.").WithErr(err)
	}
	if err != nil {
		return products.Draft{}, apperr.GatewayErr("Erro ao carregar produto: ", err)
	}
	return products.DraftFromProduct(p), nil
}

func imageNotFound() error {
	const msg = "Imagem não encontrada neste produto."
	return apperr.InvalidErr(msg, map[string]string{"url": msg})
}

// purge deletes the bucket objects behind urls and returns how many went.
// URLs the bucket did not issue are skipped; failures are only logged.
func (s *Service) purge(ctx context.Context, urls ...string) int {
	n := 0
	for _, u := range urls {
		key, ok := s.storage.KeyFor(u)
		if !ok {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Warn("image delete failed", slog.String("key", key), slog.Any("err", err))
			continue
		}
		n++
	}
	return n
}

func gallery(p products.Product) []string {
	out := append([]string(nil), p.Images...)
	if p.Image != "" && !slices.Contains(out, p.Image) {
		out = append(out, p.Image)
	}
	return out
}

// MarkDelete is the first step of a delete. The returned token confirms it.
func (s *Service) MarkDelete(owner, id string) (string, time.Time, view.Flash) {
	tok, exp := s.pending.Mark(owner, id)
	return tok, exp, view.Flash{Kind: view.FlashWarning, Message: "Confirme a exclusão do produto."}
}

// ConfirmDelete deletes the product marked by owner when the token matches.
func (s *Service) ConfirmDelete(ctx context.Context, owner, id, token string) (view.Flash, error) {
	if !s.pending.Take(owner, id, token) {
		return view.Flash{}, apperr.ConflictErr("Confirmação de exclusão inválida ou expirada.").WithErr(ErrConfirmationRequired)
	}
	return s.Delete(ctx, id)
}

func (s *Service) CancelDelete(owner string) view.Flash {
	s.pending.Cancel(owner)
	return view.Flash{Kind: view.FlashInfo, Message: "Exclusão cancelada."}
}

// PendingDelete reports the product owner has marked for deletion.
func (s *Service) PendingDelete(owner string) (string, bool) { return s.pending.Pending(owner) }

// DeleteAll wipes the catalog: it reads every id and deletes that set. Rows
// created in between survive; there is no rollback if the delete fails.
func (s *Service) DeleteAll(ctx context.Context, confirmation string) (int, view.Flash, error) {
	if strings.TrimSpace(confirmation) != DeleteAllPhrase {
		msg := fmt.Sprintf("Digite %q para confirmar a exclusão de todos os produtos.", DeleteAllPhrase)
		return 0, view.Flash{}, apperr.InvalidErr(msg, map[string]string{"confirm": "Confirmação obrigatória."}).WithErr(ErrConfirmationRequired)
	}

	ids, err := s.store.IDs(ctx)
	if err != nil {
		return 0, view.Flash{}, apperr.GatewayErr("Erro ao excluir tudo: ", err)
	}
	if len(ids) == 0 {
		return 0, success("Não há produtos para excluir."), nil
	}
	if err := s.store.DeleteIDs(ctx, ids); err != nil {
		return 0, view.Flash{}, apperr.GatewayErr("Erro ao excluir tudo: ", err)
	}
	s.log.Warn("catalog wiped", slog.Int("count", len(ids)))
	return len(ids), success("Todos os produtos foram excluídos com sucesso."), nil
}

// Sync upserts the embedded product list. It probes the table first so a
// missing schema gets its own message.
func (s *Service) Sync(ctx context.Context) (int, view.Flash, error) {
	if err := s.store.Probe(ctx); err != nil {
		if errors.Is(err, products.ErrTableMissing) {
			return 0, view.Flash{}, &apperr.AppError{
				Kind:      apperr.Unavailable,
				PublicMsg: `A tabela "products" não existe. Execute as migrações primeiro.`,
				Err:       err,
			}
		}
		return 0, view.Flash{}, apperr.GatewayErr("Erro ao sincronizar: ", err)
	}

	items, err := products.SeedList()
	if err != nil {
		return 0, view.Flash{}, apperr.Wrap(err)
	}
	if err := s.store.UpsertMany(ctx, items); err != nil {
		return 0, view.Flash{}, apperr.GatewayErr("Erro ao sincronizar: ", err)
	}
	s.log.Info("catalog synced", slog.Int("count", len(items)))
	return len(items), success("Produtos sincronizados com sucesso!"), nil
}

// SetupStorage creates the product image bucket. An existing bucket is fine.
func (s *Service) SetupStorage(ctx context.Context) (view.Flash, error) {
	if err := s.storage.EnsureBucket(ctx); err != nil {
		return view.Flash{}, &apperr.AppError{
			Kind:      apperr.Unavailable,
			PublicMsg: "Erro na configuração: " + err.Error() + ". Certifique-se de que as migrações foram executadas.",
			Err:       err,
		}
	}
	return success(fmt.Sprintf("Armazenamento configurado com sucesso! (Bucket %q pronto)", s.bucket)), nil
}

// File is one upload in a batch.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type UploadResult struct {
	URLs  []string       `json:"urls"`
	Draft products.Draft `json:"draft"`
	Flash view.Flash     `json:"flash"`
}

// Upload stores files one after another and adds their URLs to the draft.
// It stops at the first failure; URLs uploaded before it are kept on the
// draft and returned alongside the error.
func (s *Service) Upload(ctx context.Context, d products.Draft, files []File) (UploadResult, error) {
	if len(files) == 0 {
		return UploadResult{Draft: d}, apperr.InvalidErr("Selecione ao menos uma imagem.", map[string]string{"files": "Campo obrigatório."}).WithErr(ErrNoFiles)
	}

	var urls []string
	var failure error
	for _, f := range files {
		res, err := s.put(ctx, f)
		if err != nil {
			failure = err
			s.log.Warn("image upload failed",
				slog.String("file", f.Name),
				slog.Int("uploaded", len(urls)),
				slog.Any("err", err),
			)
			break
		}
		urls = append(urls, res.URL)
	}

	d.Images = append([]string(nil), d.Images...)
	d.AddImages(urls...)
	out := UploadResult{URLs: urls, Draft: d}
	if failure != nil {
		return out, apperr.GatewayErr("Erro ao carregar imagem: ", failure)
	}
	out.Flash = success(fmt.Sprintf("%d imagem(ns) carregada(s) com sucesso!", len(urls)))
	return out, nil
}

func (s *Service) put(ctx context.Context, f File) (storage.PutResult, error) {
	if err := ctx.Err(); err != nil {
		return storage.PutResult{}, err
	}
	rc, err := f.Open()
	if err != nil {
		return storage.PutResult{}, err
	}
	defer rc.Close()
	return s.storage.Put(ctx, rc, storage.PutInput{Filename: f.Name, ContentType: f.ContentType, Size: f.Size})
}
