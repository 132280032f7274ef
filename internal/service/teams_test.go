package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

func TestTeamCreateBootstrapsOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	creator := e.createUser(t, "Team Creator")
	team, err := e.teams.Create(ctx, domain.CreateTeamInput{Name: "Core"}, creator.ID)
	require.NoError(t, err)

	members, err := e.teams.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, creator.ID, members[0].UserID)
	assert.Equal(t, domain.TeamRoleOwner, members[0].Role)
}

func TestTeamManagementRequiresManagerRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Role Owner")
	member := e.createUser(t, "Role Member")
	outsider := e.createUser(t, "Role Outsider")

	team, err := e.teams.Create(ctx, domain.CreateTeamInput{Name: "Roles"}, owner.ID)
	require.NoError(t, err)

	_, err = e.teams.AddMember(ctx, team.ID, member.ID, domain.TeamRoleMember, owner.ID)
	require.NoError(t, err)

	// Рядовой участник не управляет командой
	_, err = e.teams.AddMember(ctx, team.ID, outsider.ID, domain.TeamRoleMember, member.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = e.teams.Update(ctx, team.ID, domain.TeamPatch{Name: ptr("Hijacked")}, member.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = e.teams.Delete(ctx, team.ID, member.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// Посторонний тем более
	_, err = e.teams.UpdateMemberRole(ctx, team.ID, member.ID, domain.TeamRoleAdmin, outsider.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// Админу можно
	_, err = e.teams.UpdateMemberRole(ctx, team.ID, member.ID, domain.TeamRoleAdmin, owner.ID)
	require.NoError(t, err)
	_, err = e.teams.AddMember(ctx, team.ID, outsider.ID, domain.TeamRoleMember, member.ID)
	require.NoError(t, err)
}

func TestTeamMemberSelfRemoval(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Self Owner")
	member := e.createUser(t, "Self Member")

	team, err := e.teams.Create(ctx, domain.CreateTeamInput{Name: "Self"}, owner.ID)
	require.NoError(t, err)
	_, err = e.teams.AddMember(ctx, team.ID, member.ID, domain.TeamRoleMember, owner.ID)
	require.NoError(t, err)

	// Выйти из команды можно самому, роль не нужна
	err = e.teams.RemoveMember(ctx, team.ID, member.ID, member.ID)
	require.NoError(t, err)

	members, err := e.teams.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestTeamLastOwnerProtection(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Last Owner")
	member := e.createUser(t, "Last Member")

	team, err := e.teams.Create(ctx, domain.CreateTeamInput{Name: "Guarded"}, owner.ID)
	require.NoError(t, err)
	_, err = e.teams.AddMember(ctx, team.ID, member.ID, domain.TeamRoleMember, owner.ID)
	require.NoError(t, err)

	// Единственного владельца нельзя ни удалить, ни понизить
	err = e.teams.RemoveMember(ctx, team.ID, owner.ID, owner.ID)
	assert.ErrorIs(t, err, domain.ErrLastOwner)

	_, err = e.teams.UpdateMemberRole(ctx, team.ID, owner.ID, domain.TeamRoleMember, owner.ID)
	assert.ErrorIs(t, err, domain.ErrLastOwner)

	// После появления второго владельца ограничение снимается
	_, err = e.teams.UpdateMemberRole(ctx, team.ID, member.ID, domain.TeamRoleOwner, owner.ID)
	require.NoError(t, err)

	_, err = e.teams.UpdateMemberRole(ctx, team.ID, owner.ID, domain.TeamRoleMember, owner.ID)
	require.NoError(t, err)
}

func TestTeamDeleteCascadesMembersAndLinks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Cascade Owner")
	member := e.createUser(t, "Cascade Member")
	project := e.createProject(t, "Cascade", owner.ID)

	team, err := e.teams.Create(ctx, domain.CreateTeamInput{Name: "Doomed"}, owner.ID)
	require.NoError(t, err)
	_, err = e.teams.AddMember(ctx, team.ID, member.ID, domain.TeamRoleMember, owner.ID)
	require.NoError(t, err)
	err = e.teams.AddToProject(ctx, team.ID, project.ID, owner.ID)
	require.NoError(t, err)

	err = e.teams.Delete(ctx, team.ID, owner.ID)
	require.NoError(t, err)

	_, err = e.teams.Get(ctx, team.ID)
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)

	members, err := e.repo.ListTeamMembers(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	links, err := e.repo.ListTeamProjectLinks(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestTeamProjectAssociationGrantsAccess(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.createUser(t, "Assoc Owner")
	teammate := e.createUser(t, "Assoc Teammate")
	project := e.createProject(t, "Assoc", owner.ID)

	team, err := e.teams.Create(ctx, domain.CreateTeamInput{Name: "Assoc"}, owner.ID)
	require.NoError(t, err)
	_, err = e.teams.AddMember(ctx, team.ID, teammate.ID, domain.TeamRoleMember, owner.ID)
	require.NoError(t, err)

	ok, err := e.projects.HasAccess(ctx, project.ID, teammate.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = e.teams.AddToProject(ctx, team.ID, project.ID, owner.ID)
	require.NoError(t, err)

	ok, err = e.projects.HasAccess(ctx, project.ID, teammate.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Отвязка команды отзывает доступ
	err = e.teams.RemoveFromProject(ctx, team.ID, project.ID, owner.ID)
	require.NoError(t, err)

	ok, err = e.projects.HasAccess(ctx, project.ID, teammate.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
