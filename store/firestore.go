// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danielhkuo/devops-poll/models"
	"github.com/danielhkuo/devops-poll/tally"
)

const pollsCollection = "polls"

var errPollNotFound = errors.New("poll document not found")

// pollDocument is the shape of polls/{pollID}
type pollDocument struct {
	Options []string         `firestore:"options"`
	Votes   map[string]int64 `firestore:"votes"`
}

// FirestoreStore keeps the tally in a single Firestore document. The
// options array fixes the order, the votes map holds the counts.
type FirestoreStore struct {
	client *firestore.Client
	doc    *firestore.DocumentRef
}

// NewFirestoreStore uses the document polls/{pollID}
func NewFirestoreStore(client *firestore.Client, pollID string) *FirestoreStore {
	return &FirestoreStore{
		client: client,
		doc:    client.Collection(pollsCollection).Doc(pollID),
	}
}

// ConnectFirestore initializes a Firebase app for projectID and returns its
// Firestore client. An empty credentialsFile uses application default
// credentials (or the emulator when FIRESTORE_EMULATOR_HOST is set).
func ConnectFirestore(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect Firestore: %w", err)
	}
	return client, nil
}

// GetAll reads the poll document
func (s *FirestoreStore) GetAll(ctx context.Context) (*tally.Tally, error) {
	snap, err := s.doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, storageErr(models.BackendFirestore, "read", errPollNotFound)
	}
	if err != nil {
		return nil, storageErr(models.BackendFirestore, "read", err)
	}

	t, err := decodePoll(snap)
	if err != nil {
		return nil, storageErr(models.BackendFirestore, "parse", err)
	}
	return t, nil
}

// Increment adds one vote to label inside a transaction
func (s *FirestoreStore) Increment(ctx context.Context, label string) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(s.doc)
		if status.Code(err) == codes.NotFound {
			return errPollNotFound
		}
		if err != nil {
			return err
		}

		var doc pollDocument
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("%w: %v", tally.ErrMalformed, err)
		}
		if _, ok := doc.Votes[label]; !ok {
			return fmt.Errorf("%w: %q", tally.ErrUnknownOption, label)
		}

		return tx.Update(s.doc, []firestore.Update{
			{FieldPath: firestore.FieldPath{"votes", label}, Value: firestore.Increment(1)},
		})
	})

	if errors.Is(err, tally.ErrUnknownOption) {
		return err
	}
	if err != nil {
		return storageErr(models.BackendFirestore, "increment", err)
	}
	return nil
}

// Seed creates the poll document or appends missing labels to it
func (s *FirestoreStore) Seed(ctx context.Context, labels []string) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc := pollDocument{Votes: map[string]int64{}}

		snap, err := tx.Get(s.doc)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			if err := snap.DataTo(&doc); err != nil {
				return fmt.Errorf("%w: %v", tally.ErrMalformed, err)
			}
			if doc.Votes == nil {
				doc.Votes = map[string]int64{}
			}
		}

		for _, label := range labels {
			if _, ok := doc.Votes[label]; ok {
				continue
			}
			doc.Options = append(doc.Options, label)
			doc.Votes[label] = 0
		}
		return tx.Set(s.doc, doc)
	})
	if err != nil {
		return storageErr(models.BackendFirestore, "seed", err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func decodePoll(snap *firestore.DocumentSnapshot) (*tally.Tally, error) {
	var doc pollDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", tally.ErrMalformed, err)
	}

	entries := make([]tally.Entry, 0, len(doc.Options))
	for _, label := range doc.Options {
		votes, ok := doc.Votes[label]
		if !ok {
			return nil, fmt.Errorf("%w: no count for %q", tally.ErrMalformed, label)
		}
		entries = append(entries, tally.Entry{Label: label, Votes: int(votes)})
	}
	return tally.FromEntries(entries)
}
