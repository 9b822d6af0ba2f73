package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ViewStateCollection is the collection name without prefix
const ViewStateCollection = "view_states"

type viewStateDocument struct {
	SessionID     string    `firestore:"session_id"`
	ListID        string    `firestore:"list_id"`
	Pin           bool      `firestore:"pin"`
	HiddenColumns []string  `firestore:"hidden_columns"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

type viewStateRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newViewStateRepository(client *firestore.Client) *viewStateRepository {
	return &viewStateRepository{
		client:           client,
		collectionPrefix: "",
	}
}

// CollectionName returns name with the optional prefix applied
func CollectionName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

func (r *viewStateRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, ViewStateCollection))
}

// docID joins session and list so that one session holds one document per list
func docID(sessionID model.SessionID, listID model.ListID) string {
	return string(sessionID) + "_" + string(listID)
}

func viewStateToDocument(state *model.ViewState) *viewStateDocument {
	hidden := state.HiddenColumns
	if hidden == nil {
		hidden = []string{}
	}
	return &viewStateDocument{
		SessionID:     string(state.SessionID),
		ListID:        string(state.ListID),
		Pin:           state.Pin,
		HiddenColumns: hidden,
		UpdatedAt:     state.UpdatedAt,
	}
}

func viewStateToModel(doc *viewStateDocument) *model.ViewState {
	state := &model.ViewState{
		SessionID:     model.SessionID(doc.SessionID),
		ListID:        model.ListID(doc.ListID),
		Pin:           doc.Pin,
		HiddenColumns: doc.HiddenColumns,
		UpdatedAt:     doc.UpdatedAt,
	}
	return state.Copy()
}

func (r *viewStateRepository) Get(ctx context.Context, sessionID model.SessionID, listID model.ListID) (*model.ViewState, error) {
	doc, err := r.collection().Doc(docID(sessionID, listID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "view state not found",
				goerr.V("sessionID", sessionID), goerr.V("listID", listID))
		}
		return nil, goerr.Wrap(err, "failed to get view state",
			goerr.V("sessionID", sessionID), goerr.V("listID", listID))
	}

	var stateDoc viewStateDocument
	if err := doc.DataTo(&stateDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal view state",
			goerr.V("sessionID", sessionID), goerr.V("listID", listID))
	}

	return viewStateToModel(&stateDoc), nil
}

func (r *viewStateRepository) Put(ctx context.Context, state *model.ViewState) (*model.ViewState, error) {
	if state.SessionID == "" || state.ListID == "" {
		return nil, goerr.New("session ID and list ID are required",
			goerr.V("sessionID", state.SessionID), goerr.V("listID", state.ListID))
	}

	doc := viewStateToDocument(state)
	doc.UpdatedAt = time.Now().UTC()

	if _, err := r.collection().Doc(docID(state.SessionID, state.ListID)).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put view state",
			goerr.V("sessionID", state.SessionID), goerr.V("listID", state.ListID))
	}

	return viewStateToModel(doc), nil
}

func (r *viewStateRepository) Update(ctx context.Context, sessionID model.SessionID, listID model.ListID, fn func(*model.ViewState)) (*model.ViewState, error) {
	if sessionID == "" || listID == "" {
		return nil, goerr.New("session ID and list ID are required",
			goerr.V("sessionID", sessionID), goerr.V("listID", listID))
	}

	ref := r.collection().Doc(docID(sessionID, listID))
	var updated *viewStateDocument

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		state := model.NewViewState(sessionID, listID)

		snap, err := tx.Get(ref)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return goerr.Wrap(err, "failed to get view state in transaction")
		default:
			var current viewStateDocument
			if err := snap.DataTo(&current); err != nil {
				return goerr.Wrap(err, "failed to unmarshal view state")
			}
			state = viewStateToModel(&current)
		}

		fn(state)
		state.SessionID, state.ListID = sessionID, listID

		doc := viewStateToDocument(state)
		doc.UpdatedAt = time.Now().UTC()
		if err := tx.Set(ref, doc); err != nil {
			return goerr.Wrap(err, "failed to set view state in transaction")
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update view state",
			goerr.V("sessionID", sessionID), goerr.V("listID", listID))
	}

	return viewStateToModel(updated), nil
}

func (r *viewStateRepository) ListBySession(ctx context.Context, sessionID model.SessionID) ([]*model.ViewState, error) {
	iter := r.collection().
		Where("session_id", "==", string(sessionID)).
		OrderBy("updated_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	states := make([]*model.ViewState, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate view states", goerr.V("sessionID", sessionID))
		}

		var stateDoc viewStateDocument
		if err := doc.DataTo(&stateDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal view state", goerr.V("sessionID", sessionID))
		}
		states = append(states, viewStateToModel(&stateDoc))
	}

	return states, nil
}
