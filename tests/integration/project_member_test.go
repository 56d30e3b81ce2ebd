package integration

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dimitrije/flowdesk-api/internal/logger"
	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/dimitrije/flowdesk-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const frontendURL = "http://app.flowdesk.test"

func newMemberService(tdb *testutil.TestDB, sender services.InvitationSender) *services.ProjectMemberService {
	return services.NewProjectMemberService(tdb.DB, services.NewUserService(tdb.DB), sender, frontendURL, time.Hour)
}

// capturingSender records every invitation's token from its accept link.
func capturingSender(t *testing.T) (*testutil.MockInvitationSender, *[]string) {
	t.Helper()
	var tokens []string
	sender := new(testutil.MockInvitationSender)
	sender.On("SendProjectInvitation", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inv := args.Get(1).(services.Invitation)
		u, err := url.Parse(inv.AcceptURL)
		require.NoError(t, err)
		tokens = append(tokens, u.Query().Get("token"))
	}).Return(nil)
	return sender, &tokens
}

func TestProjectMemberService_Integration_InviteAndAccept(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	sender, tokens := capturingSender(t)
	svc := newMemberService(tdb, sender)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	project := fixtures.CreateProject(t, owner)

	member, err := svc.UpsertAndSend(ctx, services.UpsertMemberParams{
		Email:     "Invitee@Example.com",
		Role:      models.MemberRoleEditor,
		Status:    models.MemberStatusPending,
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "invitee@example.com", member.Email)
	assert.Equal(t, models.MemberStatusPending, member.Status)
	require.Len(t, *tokens, 1)

	accepted, err := svc.Accept(ctx, (*tokens)[0])
	require.NoError(t, err)
	assert.Equal(t, member.ID, accepted.ID)
	assert.Equal(t, models.MemberStatusActive, accepted.Status)

	// tokens are single use
	_, err = svc.Accept(ctx, (*tokens)[0])
	assert.ErrorIs(t, err, services.ErrInvitationDenied)
}

func TestProjectMemberService_Integration_ReinviteRotatesToken(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	sender, tokens := capturingSender(t)
	svc := newMemberService(tdb, sender)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	project := fixtures.CreateProject(t, owner)

	params := services.UpsertMemberParams{
		Email:     "invitee@example.com",
		Role:      models.MemberRoleViewer,
		Status:    models.MemberStatusPending,
		ProjectID: project.ID,
	}
	first, err := svc.UpsertAndSend(ctx, params)
	require.NoError(t, err)

	params.Role = models.MemberRoleAdmin
	second, err := svc.UpsertAndSend(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.MemberRoleAdmin, second.Role)
	require.Len(t, *tokens, 2)

	_, err = svc.Accept(ctx, (*tokens)[0])
	assert.ErrorIs(t, err, services.ErrInvitationDenied)
	_, err = svc.Accept(ctx, (*tokens)[1])
	assert.NoError(t, err)
}

func TestProjectMemberService_Integration_ActiveMemberNotDemoted(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	sender := new(testutil.MockInvitationSender)
	svc := newMemberService(tdb, sender)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	project := fixtures.CreateProject(t, owner)
	existing := fixtures.CreateMember(t, project, "active@example.com", models.MemberStatusActive)

	updated, err := svc.UpsertAndSend(ctx, services.UpsertMemberParams{
		Email:     "active@example.com",
		Role:      models.MemberRoleAdmin,
		Status:    models.MemberStatusPending,
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, models.MemberStatusActive, updated.Status)
	assert.Equal(t, models.MemberRoleAdmin, updated.Role)
	sender.AssertNotCalled(t, "SendProjectInvitation", mock.Anything, mock.Anything)
}

func TestProjectMemberService_Integration_DeliveryFailureRollsBack(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	sender := new(testutil.MockInvitationSender)
	sender.On("SendProjectInvitation", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	svc := newMemberService(tdb, sender)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	project := fixtures.CreateProject(t, owner)

	_, err := svc.UpsertAndSend(ctx, services.UpsertMemberParams{
		Email:     "invitee@example.com",
		Role:      models.MemberRoleEditor,
		Status:    models.MemberStatusPending,
		ProjectID: project.ID,
	})
	require.ErrorIs(t, err, services.ErrInvitationDelivery)

	page, err := svc.List(ctx, project.ID, "", 0)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestProjectMemberService_Integration_UnknownProject(t *testing.T) {
	tdb := setupTest(t)
	svc := newMemberService(tdb, new(testutil.MockInvitationSender))

	_, err := svc.UpsertAndSend(context.Background(), services.UpsertMemberParams{
		Email:     "invitee@example.com",
		Role:      models.MemberRoleEditor,
		Status:    models.MemberStatusActive,
		ProjectID: uuid.New(),
	})
	assert.ErrorIs(t, err, services.ErrAuthorization)
}

func TestProjectMemberService_Integration_ConcurrentAccept(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	sender, tokens := capturingSender(t)
	svc := newMemberService(tdb, sender)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	project := fixtures.CreateProject(t, owner)

	_, err := svc.UpsertAndSend(ctx, services.UpsertMemberParams{
		Email:     "invitee@example.com",
		Role:      models.MemberRoleOperator,
		Status:    models.MemberStatusPending,
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	token := (*tokens)[0]

	const attempts = 10
	var successes, denials atomic.Int32
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Accept(ctx, token)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, services.ErrInvitationDenied):
				denials.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(attempts-1), denials.Load())
}

func TestProjectMemberService_Integration_ExpiredInvitation(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	sender, tokens := capturingSender(t)
	svc := newMemberService(tdb, sender)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	project := fixtures.CreateProject(t, owner)
	active := fixtures.CreateMember(t, project, "active@example.com", models.MemberStatusActive)

	member, err := svc.UpsertAndSend(ctx, services.UpsertMemberParams{
		Email:     "late@example.com",
		Role:      models.MemberRoleViewer,
		Status:    models.MemberStatusPending,
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	fixtures.ExpireInvitation(t, member.ID)

	_, err = svc.Accept(ctx, (*tokens)[0])
	assert.ErrorIs(t, err, services.ErrInvitationDenied)

	services.NewInvitationSweeper(svc, logger.Discard()).Sweep()

	page, err := svc.List(ctx, project.ID, "", 0)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, active.ID, page.Data[0].ID)
}

func TestProjectMemberService_Integration_Pagination(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newMemberService(tdb, new(testutil.MockInvitationSender))
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	project := fixtures.CreateProject(t, owner)
	other := fixtures.CreateProject(t, owner)
	fixtures.CreateMember(t, other, "elsewhere@example.com", models.MemberStatusActive)

	const total = 23
	for i := range total {
		fixtures.CreateMember(t, project, "member"+string(rune('a'+i))+"@example.com", models.MemberStatusActive)
	}

	seen := make(map[uuid.UUID]bool)
	cursor := ""
	pages := 0
	for {
		page, err := svc.List(ctx, project.ID, cursor, 10)
		require.NoError(t, err)
		pages++
		for _, m := range page.Data {
			assert.Equal(t, project.ID, m.ProjectID)
			assert.False(t, seen[m.ID], "member %s returned twice", m.ID)
			seen[m.ID] = true
		}
		if page.Next == nil {
			break
		}
		cursor = *page.Next
	}

	assert.Equal(t, 3, pages)
	assert.Len(t, seen, total)
}

func TestProjectMemberService_Integration_DeleteScopedToProject(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newMemberService(tdb, new(testutil.MockInvitationSender))
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	project := fixtures.CreateProject(t, owner)
	other := fixtures.CreateProject(t, owner)
	member := fixtures.CreateMember(t, project, "member@example.com", models.MemberStatusActive)

	err := svc.Delete(ctx, other.ID, member.ID)
	assert.ErrorIs(t, err, services.ErrMemberNotFound)

	require.NoError(t, svc.Delete(ctx, project.ID, member.ID))

	err = svc.Delete(ctx, project.ID, member.ID)
	assert.ErrorIs(t, err, services.ErrMemberNotFound)
}

func TestProjectMemberService_Integration_DeleteByUserExternalID(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newMemberService(tdb, new(testutil.MockInvitationSender))
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	platform := fixtures.CreatePlatform(t, owner, testutil.WithEmbedding())
	platformOwner := fixtures.CreateUser(t, testutil.WithPlatform(platform))
	project := fixtures.CreateProject(t, platformOwner)
	user := fixtures.CreateUser(t,
		testutil.WithPlatform(platform),
		testutil.WithExternalID("ext-42"),
		testutil.WithEmail("Embedded@Example.com"),
	)
	fixtures.CreateMember(t, project, "embedded@example.com", models.MemberStatusActive)

	params := services.DeleteByExternalIDParams{
		UserExternalID: "ext-42",
		PlatformID:     &platform.ID,
		ProjectID:      project.ID,
	}
	require.NoError(t, svc.DeleteByUserExternalID(ctx, params))

	err := svc.DeleteByUserExternalID(ctx, params)
	assert.ErrorIs(t, err, services.ErrMemberNotFound)

	params.UserExternalID = "ext-missing"
	err = svc.DeleteByUserExternalID(ctx, params)
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	params.PlatformID = nil
	err = svc.DeleteByUserExternalID(ctx, params)
	assert.ErrorIs(t, err, services.ErrPlatformRequired)

	registered, err := services.NewUserService(tdb.DB).GetByPlatformAndEmail(ctx, &platform.ID, "embedded@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, registered.ID)
}
