package router

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/roach88/msgcore/internal/events"
	"github.com/roach88/msgcore/internal/identity"
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/notification"
	"github.com/roach88/msgcore/internal/pubsub"
	"github.com/roach88/msgcore/internal/store"
)

var (
	alice = ir.CryptoID{0xa1}
	bob   = ir.CryptoID{0xb0}
)

// allEvents has one zero-valued event per kind.
func allEvents() []events.Event {
	return []events.Event{
		events.OutboxMessageWasUploaded{},
		events.OutboxMessagesAndAllTheirAttachmentsWereAcknowledged{},
		events.OutboxAttachmentWasAcknowledged{},
		events.OutboxAttachmentHasNewProgress{},
		events.OutboxMessageCouldNotBeSentToServer{},
		events.InboxAttachmentWasDownloaded{},
		events.InboxAttachmentHasNewProgress{},
		events.InboxAttachmentDownloadCancelledByServer{},
		events.NewReturnReceiptToProcess{},
		events.TurnCredentialsReceived{},
		events.TurnCredentialsReceptionFailure{},
		events.TurnCredentialsReceptionPermissionDenied{},
		events.TurnCredentialServerDoesNotSupportCalls{},
		events.APIKeyStatusQueryFailed{},
		events.FreeTrialIsStillAvailableForOwnedIdentity{},
		events.NoMoreFreeTrialAPIKeyAvailableForOwnedIdentity{},
		events.AppStoreReceiptVerificationFailed{},
		events.WellKnownHasBeenUpdated{},
		events.ContactIdentityIsNowTrusted{},
		events.NewTrustedContactIdentityDetails{},
		events.NewPublishedContactIdentityDetails{},
		events.ContactIsActiveChanged{},
		events.ContactWasRevokedAsCompromised{},
		events.ContactCapabilitiesWereUpdated{},
		events.TrustedPhotoOfContactWasUpdated{},
		events.ContactWasDeleted{},
		events.OwnedIdentityDetailsPublicationInProgress{},
		events.OwnedIdentityCapabilitiesWereUpdated{},
		events.OwnedIdentityKeycloakServerChanged{},
		events.PublishedPhotoOfOwnedIdentityWasUpdated{},
		events.OwnedIdentityWasDeactivated{},
		events.OwnedIdentityWasReactivated{},
		events.NewContactGroupJoined{},
		events.NewContactGroupOwned{},
		events.ContactGroupOwnedHasUpdatedPublishedDetails{},
		events.ContactGroupJoinedHasUpdatedTrustedDetails{},
		events.ContactGroupDeleted{},
		events.PendingGroupMemberDeclinedInvitation{},
		events.NewConfirmedObliviousChannel{},
		events.DeletedConfirmedObliviousChannel{},
		events.MutualScanContactAdded{},
		events.NewUserDialogToPresent{},
		events.UserDialogToDelete{},
		events.BackupForExportWasFinished{},
		events.BackupForUploadWasFinished{},
		events.BackupFailed{},
		events.NetworkOperationFailedSinceOwnedIdentityIsNotActive{},
		events.ServerRequiresThisDeviceToRegisterToPushNotifications{},
		events.WellKnownHasBeenDownloaded{},
		events.WellKnownDownloadFailure{},
		events.CannotReturnAnyProgressForMessageAttachments{},
		events.ApplicationMessagesDecrypted{},
		events.DownloadingMessageExtendedPayloadWasPerformed{},
		events.InboxAttachmentDownloadWasResumed{},
		events.InboxAttachmentDownloadWasPaused{},
		events.OwnedAttachmentWasDownloaded{},
		events.OwnedAttachmentDownloadWasResumed{},
		events.OwnedAttachmentDownloadWasPaused{},
		events.OwnedAttachmentDownloadCancelledByServer{},
		events.PushTopicReceivedViaWebsocket{},
		events.KeycloakTargetedPushNotificationReceivedViaWebsocket{},
		events.NewAPIKeyElementsForCurrentAPIKey{},
		events.ContactWasUpdatedWithinTheIdentityManager{},
		events.PublishedPhotoOfContactWasUpdated{},
		events.NewContactDevice{},
		events.UpdatedContactDevice{},
		events.NewRemoteOwnedDevice{},
		events.AnOwnedDeviceWasUpdated{},
		events.AnOwnedDeviceWasDeleted{},
		events.OwnedIdentityWasDeleted{},
		events.OwnedIdentityRequiresPushRegistration{},
		events.ContactGroupHasUpdatedPendingMembersAndGroupMembers{},
		events.TrustedPhotoOfContactGroupJoinedWasUpdated{},
		events.PublishedPhotoOfContactGroupWasUpdated{},
		events.LatestPhotoOfContactGroupOwnedWasUpdated{},
		events.ContactGroupOwnedHasUpdatedLatestDetails{},
		events.ContactGroupOwnedDiscardedLatestDetails{},
		events.DeclinedPendingGroupMemberWasUndeclined{},
		events.GroupV2WasDeleted{},
		events.GroupV2UpdateDidFail{},
		events.KeycloakSynchronizationRequired{},
		events.ContactIntroductionInvitationSent{},
		events.OwnedIdentityTransferProtocolFailed{},
		events.NewConfirmedObliviousChannelWithOwnedDevice{},
		events.DeletedConfirmedObliviousChannelWithOwnedDevice{},
	}
}

// fakeHydrator answers every hydration with an empty snapshot.
type fakeHydrator struct {
	mu    sync.Mutex
	calls int
}

func (h *fakeHydrator) hit() {
	h.mu.Lock()
	h.calls++
	h.mu.Unlock()
}

func (h *fakeHydrator) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

func (h *fakeHydrator) OwnedIdentity(_ context.Context, _ *store.Tx, owned ir.CryptoID) (ir.OwnedIdentitySnapshot, error) {
	h.hit()
	return ir.OwnedIdentitySnapshot{Identity: owned}, nil
}

func (h *fakeHydrator) OwnedDevices(_ context.Context, _ *store.Tx, owned ir.CryptoID) (ir.OwnedDevicesSnapshot, error) {
	h.hit()
	return ir.OwnedDevicesSnapshot{Owned: ir.OwnedIdentitySnapshot{Identity: owned}}, nil
}

func (h *fakeHydrator) Contact(_ context.Context, _ *store.Tx, owned, contact ir.CryptoID) (ir.ContactSnapshot, error) {
	h.hit()
	return ir.ContactSnapshot{OwnedIdentity: owned, Identity: contact}, nil
}

func (h *fakeHydrator) Group(_ context.Context, _ *store.Tx, owned ir.CryptoID, group ir.GroupID) (ir.GroupSnapshot, error) {
	h.hit()
	return ir.GroupSnapshot{OwnedIdentity: owned, Group: group}, nil
}

type received struct {
	ch chan notification.Notification
}

func subscribe(out *pubsub.Bus[notification.Notification]) *received {
	r := &received{ch: make(chan notification.Notification, 128)}
	out.Subscribe(func(n notification.Notification) { r.ch <- n })
	return r
}

func (r *received) next(t *testing.T) notification.Notification {
	t.Helper()
	select {
	case n := <-r.ch:
		return n
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a notification")
		return nil
	}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "shared.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type harness struct {
	source *pubsub.Bus[events.Event]
	out    *pubsub.Bus[notification.Notification]
	router *Router
	got    *received
}

func newHarness(t *testing.T, reader Reader, h Hydrator, opts ...Option) *harness {
	t.Helper()
	source := pubsub.New[events.Event]()
	out := pubsub.New[notification.Notification]()
	got := subscribe(out)
	r, err := New(source, reader, h, out, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		out.Close()
	})
	return &harness{source: source, out: out, router: r, got: got}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	s := openStore(t)
	source := pubsub.New[events.Event]()
	out := pubsub.New[notification.Notification]()
	h := &fakeHydrator{}

	_, err := New(nil, s, h, out)
	assert.Error(t, err)
	_, err = New(source, nil, h, out)
	assert.Error(t, err)
	_, err = New(source, s, nil, out)
	assert.Error(t, err)
	_, err = New(source, s, h, nil)
	assert.Error(t, err)
}

func TestTranslate_EveryKindMapsToOneNotification(t *testing.T) {
	s := openStore(t)
	h := &fakeHydrator{}
	r := &Router{identities: h}
	ctx := context.Background()

	seenKinds := make(map[events.Kind]bool)
	seenNames := make(map[notification.Name]events.Kind)
	for _, e := range allEvents() {
		require.False(t, seenKinds[e.Kind()], "duplicate sample for %s", e.Kind())
		seenKinds[e.Kind()] = true

		before := h.count()
		var n notification.Notification
		err := s.View(ctx, func(tx *store.Tx) error {
			var err error
			n, err = r.translate(ctx, tx, e)
			return err
		})
		require.NoError(t, err, "%s", e.Kind())
		require.NotNil(t, n, "%s", e.Kind())

		hydrated := h.count() > before
		assert.Equal(t, categoryOf(e) == categoryHydration, hydrated,
			"%s: category %s disagrees with translation", e.Kind(), categoryOf(e))

		prev, dup := seenNames[n.Name()]
		assert.False(t, dup, "%s and %s both map to %s", prev, e.Kind(), n.Name())
		seenNames[n.Name()] = e.Kind()
	}

	for _, k := range events.AllKinds() {
		assert.True(t, seenKinds[k], "no sample for %s", k)
	}
	assert.Len(t, seenNames, len(notification.Names()))
}

func TestTranslate_HydrationNeedsATransaction(t *testing.T) {
	h := &fakeHydrator{}
	r := &Router{identities: h}
	for _, e := range allEvents() {
		if categoryOf(e) != categoryHydration {
			continue
		}
		_, err := r.translate(context.Background(), nil, e)
		assert.ErrorIs(t, err, errNoTransaction, "%s", e.Kind())
	}
	assert.Zero(t, h.count(), "the hydrator never sees a nil transaction")
}

func TestRouter_HydratingEventOnDeliveryQueueIsFault(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := newHarness(t, openStore(t), &fakeHydrator{}, WithLogger(zap.New(core)))

	h.router.deliver(events.NewRemoteOwnedDevice{OwnedIdentity: alice})

	assert.Equal(t, int64(1), h.router.Dropped())
	assert.Equal(t, 1, logs.FilterMessage("hydrating event routed without a transaction").Len())
}

func TestTranslate_UnmappedIsAnError(t *testing.T) {
	r := &Router{identities: &fakeHydrator{}}
	_, err := r.translate(context.Background(), nil, nil)
	assert.ErrorIs(t, err, errUnmapped)
}

func TestRouter_PassThrough(t *testing.T) {
	h := newHarness(t, openStore(t), &fakeHydrator{})
	att := ir.AttachmentID{MessageID: ir.MessageID{OwnedIdentity: alice, UID: ir.UID{1}}, AttachmentNumber: 2}

	h.source.Publish(events.OutboxAttachmentWasAcknowledged{AttachmentID: att})

	n := h.got.next(t)
	ack, ok := n.(notification.AttachmentWasAcknowledgedByServer)
	require.True(t, ok)
	assert.Equal(t, att, ack.AttachmentID)
}

func TestRouter_FanOut(t *testing.T) {
	h := newHarness(t, openStore(t), &fakeHydrator{})
	acks := []ir.MessageAck{
		{MessageID: ir.MessageID{OwnedIdentity: alice, UID: ir.UID{1}}},
		{MessageID: ir.MessageID{OwnedIdentity: alice, UID: ir.UID{2}}},
	}

	h.source.Publish(events.OutboxMessagesAndAllTheirAttachmentsWereAcknowledged{Acks: acks})

	n := h.got.next(t)
	batch, ok := n.(notification.MessagesWereAcknowledged)
	require.True(t, ok)
	assert.Equal(t, acks, batch.Acks)
}

func TestRouter_HydratesFromStore(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.Update(ctx, func(tx *store.Tx) error {
		if err := identity.PutOwnedIdentity(ctx, tx, ir.OwnedIdentitySnapshot{Identity: alice, DisplayName: "Alice"}); err != nil {
			return err
		}
		return identity.PutContact(ctx, tx, ir.ContactSnapshot{
			OwnedIdentity:      alice,
			Identity:           bob,
			TrustedDisplayName: "Bob",
			IsActive:           false,
		})
	}))
	h := newHarness(t, s, identity.Repository{})

	h.source.Publish(events.ContactIsActiveChanged{OwnedIdentity: alice, ContactIdentity: bob})

	n := h.got.next(t)
	changed, ok := n.(notification.ContactActivityChanged)
	require.True(t, ok)
	assert.Equal(t, "Bob", changed.Contact.TrustedDisplayName)
	assert.False(t, changed.Contact.IsActive)
}

func TestRouter_HydratesOwnedDevices(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	device := ir.UID{0x07}
	require.NoError(t, s.Update(ctx, func(tx *store.Tx) error {
		if err := identity.PutOwnedIdentity(ctx, tx, ir.OwnedIdentitySnapshot{Identity: alice, DisplayName: "Alice"}); err != nil {
			return err
		}
		if err := identity.PutOwnedDevice(ctx, tx, alice, ir.OwnedDevice{UID: ir.UID{0x01}, IsCurrent: true}); err != nil {
			return err
		}
		return identity.PutOwnedDevice(ctx, tx, alice, ir.OwnedDevice{UID: device, Name: "laptop"})
	}))
	h := newHarness(t, s, identity.Repository{})

	h.source.Publish(events.NewRemoteOwnedDevice{OwnedIdentity: alice, DeviceUID: device})

	n := h.got.next(t)
	added, ok := n.(notification.NewRemoteOwnedDevice)
	require.True(t, ok, "got %T", n)
	assert.Equal(t, device, added.DeviceUID)
	assert.Equal(t, "Alice", added.Owned.Owned.DisplayName)
	require.Len(t, added.Owned.Devices, 2)
	assert.True(t, added.Owned.Devices[0].IsCurrent)
	assert.Equal(t, "laptop", added.Owned.Devices[1].Name)
}

func TestRouter_NewMessagesFanOut(t *testing.T) {
	h := newHarness(t, openStore(t), &fakeHydrator{})
	ids := []ir.MessageID{
		{OwnedIdentity: alice, UID: ir.UID{1}},
		{OwnedIdentity: alice, UID: ir.UID{2}},
	}

	h.source.Publish(events.ApplicationMessagesDecrypted{MessageIDs: ids})

	n := h.got.next(t)
	batch, ok := n.(notification.NewMessagesReceived)
	require.True(t, ok, "got %T", n)
	assert.Equal(t, ids, batch.MessageIDs)
}

func TestRouter_DropsEventWhenEntityIsGone(t *testing.T) {
	s := openStore(t)
	core, logs := observer.New(zapcore.DebugLevel)
	h := newHarness(t, s, identity.Repository{}, WithLogger(zap.New(core)))

	h.source.Publish(events.ContactIsActiveChanged{OwnedIdentity: alice, ContactIdentity: bob})
	// A later pass-through event proves the router is still running.
	h.source.Publish(events.ContactWasDeleted{OwnedIdentity: alice, ContactIdentity: bob})

	n := h.got.next(t)
	_, ok := n.(notification.ContactWasDeleted)
	require.True(t, ok)

	require.Eventually(t, func() bool { return h.router.Dropped() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, logs.FilterMessage("entity gone before hydration, event dropped").Len())
	select {
	case extra := <-h.got.ch:
		t.Fatalf("unexpected notification %s", extra.Name())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRouter_NilEventIsFault(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := newHarness(t, openStore(t), &fakeHydrator{}, WithLogger(zap.New(core)))

	h.router.Handle(nil)

	assert.Equal(t, int64(1), h.router.Dropped())
	entries := logs.FilterField(zap.Bool("fault", true)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestRouter_ReceiptsAreDelivered(t *testing.T) {
	h := newHarness(t, openStore(t), &fakeHydrator{})
	for i := 0; i < 20; i++ {
		h.source.Publish(events.NewReturnReceiptToProcess{Receipt: ir.ReturnReceipt{ServerUID: ir.UID{byte(i)}}})
	}
	for i := 0; i < 20; i++ {
		n := h.got.next(t)
		rr, ok := n.(notification.NewReturnReceiptToProcess)
		require.True(t, ok)
		assert.Equal(t, ir.UID{byte(i)}, rr.Receipt.ServerUID, "receipt queue keeps arrival order")
	}
}

func TestRouter_CloseDrainsQueuedEvents(t *testing.T) {
	s := openStore(t)
	source := pubsub.New[events.Event]()
	out := pubsub.New[notification.Notification]()
	got := subscribe(out)
	r, err := New(source, s, &fakeHydrator{}, out, WithMaxConcurrentHydrations(2))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		source.Publish(events.ContactCapabilitiesWereUpdated{OwnedIdentity: alice, ContactIdentity: bob})
		source.Publish(events.BackupFailed{})
	}
	r.Close()
	out.Close()

	assert.Equal(t, int64(20), r.Published())
	for i := 0; i < 20; i++ {
		got.next(t)
	}
}
