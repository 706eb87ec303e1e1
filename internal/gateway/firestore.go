package gateway

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore is a Store backed by Cloud Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to the project's default database
func NewFirestoreStore(ctx context.Context, projectID string, opts ...option.ClientOption) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, NetworkError("firestore.NewClient", err)
	}
	return &FirestoreStore{client: client}, nil
}

// Close releases the client connection
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) doc(op, path string) (*firestore.DocumentRef, error) {
	if _, _, ok := splitDocPath(path); !ok {
		return nil, InvalidError(op, "invalid document path "+path)
	}
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, InvalidError(op, "invalid document path "+path)
	}
	return ref, nil
}

func (s *FirestoreStore) collection(op, path string) (*firestore.CollectionRef, error) {
	if !validCollectionPath(path) {
		return nil, InvalidError(op, "invalid collection path "+path)
	}
	ref := s.client.Collection(path)
	if ref == nil {
		return nil, InvalidError(op, "invalid collection path "+path)
	}
	return ref, nil
}

// Get implements Store
func (s *FirestoreStore) Get(ctx context.Context, path string) (Document, error) {
	ref, err := s.doc(OpGet, path)
	if err != nil {
		return Document{}, err
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return Document{}, classifyRPC(OpGet, path, err)
	}
	return Document{ID: ref.ID, Path: path, Data: snap.Data()}, nil
}

// Set implements Store
func (s *FirestoreStore) Set(ctx context.Context, path string, data map[string]any) error {
	ref, err := s.doc(OpSet, path)
	if err != nil {
		return err
	}
	if _, err := ref.Set(ctx, data); err != nil {
		return classifyRPC(OpSet, path, err)
	}
	return nil
}

// Add implements Store
func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, err := s.collection(OpAdd, collection)
	if err != nil {
		return "", err
	}
	doc, _, err := ref.Add(ctx, data)
	if err != nil {
		return "", classifyRPC(OpAdd, collection, err)
	}
	return doc.ID, nil
}

// Update implements Store
func (s *FirestoreStore) Update(ctx context.Context, path string, partial map[string]any) error {
	ref, err := s.doc(OpUpdate, path)
	if err != nil {
		return err
	}
	if _, err := ref.Update(ctx, toUpdates(partial)); err != nil {
		return classifyRPC(OpUpdate, path, err)
	}
	return nil
}

// Delete implements Store
func (s *FirestoreStore) Delete(ctx context.Context, path string) error {
	ref, err := s.doc(OpDelete, path)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return classifyRPC(OpDelete, path, err)
	}
	return nil
}

// Query implements Store
func (s *FirestoreStore) Query(ctx context.Context, q Query) ([]Document, error) {
	ref, err := s.collection(OpQuery, q.Collection)
	if err != nil {
		return nil, err
	}
	query := ref.Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		query = query.OrderBy(q.OrderBy, firestore.Asc)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, classifyRPC(OpQuery, q.Collection, err)
	}
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{
			ID:   snap.Ref.ID,
			Path: JoinPath(q.Collection, snap.Ref.ID),
			Data: snap.Data(),
		})
	}
	return docs, nil
}

// toUpdates converts a partial document into field updates in key order
func toUpdates(partial map[string]any) []firestore.Update {
	keys := make([]string, 0, len(partial))
	for k := range partial {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: partial[k]})
	}
	return updates
}

// classifyRPC maps gRPC status codes onto gateway error kinds
func classifyRPC(op, path string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return NotFoundError(op, path)
	case codes.PermissionDenied, codes.Unauthenticated:
		return newError(KindAuth, op, "you do not have permission to do that", err)
	case codes.InvalidArgument:
		return newError(KindInvalid, op, "the request was rejected", err)
	default:
		return NetworkError(op, err)
	}
}
