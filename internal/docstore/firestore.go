package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Firestore struct {
	client *firestore.Client
}

// NewFirestore opens a client for projectID. With an empty credentialsFile
// the application default credentials are used.
func NewFirestore(ctx context.Context, projectID, credentialsFile string) (*Firestore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	return &Firestore{client: client}, nil
}

func (f *Firestore) All(ctx context.Context, collection string) ([]Document, error) {
	snaps, err := f.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return fromSnapshots(snaps), nil
}

func (f *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (f *Firestore) Where(ctx context.Context, collection, field string, value any) ([]Document, error) {
	q := f.client.Collection(collection).Where(field, "==", value)

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return fromSnapshots(snaps), nil
}

func (f *Firestore) Insert(ctx context.Context, collection string, data map[string]any) (Document, error) {
	ref, _, err := f.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: ref.ID, Data: cloneData(data)}, nil
}

func (f *Firestore) Merge(ctx context.Context, collection, id string, data map[string]any) (Document, error) {
	ref := f.client.Collection(collection).Doc(id)

	updates := make([]firestore.Update, 0, len(data))
	for k, v := range data {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}

	// Update fails with NotFound instead of creating the document.
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}

	return f.Get(ctx, collection, id)
}

func (f *Firestore) Delete(ctx context.Context, collection, id string) (Document, error) {
	doc, err := f.Get(ctx, collection, id)
	if err != nil {
		return Document{}, err
	}

	if _, err := f.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func (f *Firestore) Ping(ctx context.Context) error {
	_, err := f.client.Collections(ctx).Next()
	if errors.Is(err, iterator.Done) {
		return nil
	}
	return err
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func fromSnapshots(snaps []*firestore.DocumentSnapshot) []Document {
	out := make([]Document, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, Document{ID: s.Ref.ID, Data: s.Data()})
	}
	return out
}
