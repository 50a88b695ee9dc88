package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/instiprop/instiprop-api/internal/domain/user"
)

type fakePermissionRepo struct {
	roles        []Role
	groups       []Group
	titlesByID   map[string]string
	upsertCalled bool
}

func (f *fakePermissionRepo) ListRoles(ctx context.Context) ([]Role, error) {
	return f.roles, nil
}

func (f *fakePermissionRepo) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	for i := range f.roles {
		if f.roles[i].Name == name {
			return &f.roles[i], nil
		}
	}
	return nil, nil
}

func (f *fakePermissionRepo) GetRoleByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	for i := range f.roles {
		if f.roles[i].ID == id {
			return &f.roles[i], nil
		}
	}
	return nil, nil
}

func (f *fakePermissionRepo) ListGroups(ctx context.Context) ([]Group, error) {
	return f.groups, nil
}

func (f *fakePermissionRepo) GetGroupByTitle(ctx context.Context, title string) (*Group, error) {
	for i := range f.groups {
		if f.groups[i].Title == title {
			return &f.groups[i], nil
		}
	}
	return nil, nil
}

func (f *fakePermissionRepo) ListGroupsByRole(ctx context.Context, roleID uuid.UUID) ([]Group, error) {
	matched := []Group{}
	for _, g := range f.groups {
		if g.HasRole(roleID) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func (f *fakePermissionRepo) UpsertGroup(ctx context.Context, title string, roles []string, perms []GroupPermission) (*Group, error) {
	f.upsertCalled = true
	g := Group{ID: uuid.New(), Title: title, Roles: roles, Permissions: perms}
	f.groups = append(f.groups, g)
	return &g, nil
}

func (f *fakePermissionRepo) TitlesForIDs(ctx context.Context, ids []string) ([]string, error) {
	titles := []string{}
	seen := map[string]struct{}{}
	for _, id := range ids {
		title, ok := f.titlesByID[id]
		if !ok {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByUniqueID(ctx context.Context, uniqueID int64) (*user.User, error) {
	for _, u := range f.users {
		if u.UniqueID == uniqueID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateDetails(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, roleID uuid.UUID, rolePermissions []string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.RoleID = roleID
	u.RolePermissions = rolePermissions
	return nil
}

func (f *fakeUserRepo) SetPermissionOverrides(ctx context.Context, id uuid.UUID, overrides []string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PermissionOverrides = overrides
	return nil
}

func (f *fakeUserRepo) UpdateAltMobile(ctx context.Context, id uuid.UUID, altMobile string) error {
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func group(title string, roleIDs []uuid.UUID, permIDs ...uuid.UUID) Group {
	roles := make([]string, 0, len(roleIDs))
	for _, r := range roleIDs {
		roles = append(roles, r.String())
	}
	perms := make([]GroupPermission, 0, len(permIDs))
	for _, p := range permIDs {
		perms = append(perms, GroupPermission{ID: p, Title: title + "/" + p.String()})
	}
	return Group{ID: uuid.New(), Title: title, Roles: roles, Permissions: perms}
}

func TestResolveForRoleFlattensInGroupOrder(t *testing.T) {
	roleID := uuid.New()
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()

	repo := &fakePermissionRepo{groups: []Group{
		group("Listings", []uuid.UUID{roleID}, p1, p2),
		group("Reports", []uuid.UUID{roleID}, p3),
	}}
	svc := NewService(repo, newFakeUserRepo(), nil)

	ids, err := svc.ResolveForRole(context.Background(), roleID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{p1.String(), p2.String(), p3.String()}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
}

func TestResolveForRoleKeepsDuplicatesAcrossGroups(t *testing.T) {
	roleID := uuid.New()
	shared := uuid.New()

	// The same permission id granted through two groups appears twice.
	repo := &fakePermissionRepo{groups: []Group{
		group("A", []uuid.UUID{roleID}, shared),
		group("B", []uuid.UUID{roleID}, shared),
	}}
	svc := NewService(repo, newFakeUserRepo(), nil)

	ids, err := svc.ResolveForRole(context.Background(), roleID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != shared.String() || ids[1] != shared.String() {
		t.Fatalf("expected duplicate preserved, got %v", ids)
	}
}

func TestResolveForRoleSkipsOtherRolesGroups(t *testing.T) {
	roleID, otherRole := uuid.New(), uuid.New()
	mine, theirs := uuid.New(), uuid.New()

	repo := &fakePermissionRepo{groups: []Group{
		group("Mine", []uuid.UUID{roleID}, mine),
		group("Theirs", []uuid.UUID{otherRole}, theirs),
	}}
	svc := NewService(repo, newFakeUserRepo(), nil)

	ids, err := svc.ResolveForRole(context.Background(), roleID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != mine.String() {
		t.Fatalf("expected only own group's permission, got %v", ids)
	}
}

func TestUpdateUserRoleReplacesSnapshotKeepsOverrides(t *testing.T) {
	oldRole, newRole := uuid.New(), uuid.New()
	oldPerm, newPerm, override := uuid.New(), uuid.New(), uuid.New()

	u := &user.User{
		ID:                  uuid.New(),
		RoleID:              oldRole,
		RolePermissions:     []string{oldPerm.String()},
		PermissionOverrides: []string{override.String()},
	}
	users := newFakeUserRepo(u)
	repo := &fakePermissionRepo{
		roles:  []Role{{ID: newRole, Name: "Property Manager"}},
		groups: []Group{group("Property", []uuid.UUID{newRole}, newPerm)},
	}
	svc := NewService(repo, users, nil)

	if err := svc.UpdateUserRole(context.Background(), u.ID, newRole); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(u.RolePermissions) != 1 || u.RolePermissions[0] != newPerm.String() {
		t.Fatalf("expected snapshot replaced with new role's permissions, got %v", u.RolePermissions)
	}
	if len(u.PermissionOverrides) != 1 || u.PermissionOverrides[0] != override.String() {
		t.Fatalf("expected overrides untouched, got %v", u.PermissionOverrides)
	}
}

func TestUpdateUserRoleUnknownRole(t *testing.T) {
	u := &user.User{ID: uuid.New()}
	svc := NewService(&fakePermissionRepo{}, newFakeUserRepo(u), nil)

	err := svc.UpdateUserRole(context.Background(), u.ID, uuid.New())
	if !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestPermissionsForRegistrationPropertyManager(t *testing.T) {
	managerRole := Role{ID: uuid.New(), Name: RoleNamePropertyManager}
	p1, p2 := uuid.New(), uuid.New()

	repo := &fakePermissionRepo{groups: []Group{
		group(PropertyGroupTitle, []uuid.UUID{managerRole.ID}, p1, p2),
	}}
	svc := NewService(repo, newFakeUserRepo(), nil)

	ids, err := svc.PermissionsForRegistration(context.Background(), &managerRole)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != p1.String() || ids[1] != p2.String() {
		t.Fatalf("expected both Property permissions, got %v", ids)
	}
}

func TestPermissionsForRegistrationPlainUserGetsNone(t *testing.T) {
	userRole := Role{ID: uuid.New(), Name: RoleNameUser}
	repo := &fakePermissionRepo{groups: []Group{
		group(PropertyGroupTitle, []uuid.UUID{uuid.New()}, uuid.New()),
	}}
	svc := NewService(repo, newFakeUserRepo(), nil)

	ids, err := svc.PermissionsForRegistration(context.Background(), &userRole)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no permissions for plain user, got %v", ids)
	}
}

func TestPermissionsForRegistrationMissingPropertyGroup(t *testing.T) {
	managerRole := Role{ID: uuid.New(), Name: RoleNamePropertyManager}
	svc := NewService(&fakePermissionRepo{}, newFakeUserRepo(), nil)

	ids, err := svc.PermissionsForRegistration(context.Background(), &managerRole)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty snapshot when Property group missing, got %v", ids)
	}
}

func TestEffectivePermissionTitlesUnionsOverrides(t *testing.T) {
	rolePerm, override := uuid.New(), uuid.New()
	u := &user.User{
		ID:                  uuid.New(),
		RolePermissions:     []string{rolePerm.String()},
		PermissionOverrides: []string{override.String()},
	}
	repo := &fakePermissionRepo{titlesByID: map[string]string{
		rolePerm.String(): "Manage Listings",
		override.String(): "Manage Users",
	}}
	svc := NewService(repo, newFakeUserRepo(u), nil)

	titles, err := svc.EffectivePermissionTitles(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %v", titles)
	}
}

func TestUserHasPermission(t *testing.T) {
	perm := uuid.New()
	u := &user.User{ID: uuid.New(), RolePermissions: []string{perm.String()}}
	repo := &fakePermissionRepo{titlesByID: map[string]string{perm.String(): "Manage Listings"}}
	svc := NewService(repo, newFakeUserRepo(u), nil)

	ok, err := svc.UserHasPermission(context.Background(), u.ID, "Manage Listings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected permission granted")
	}

	ok, err = svc.UserHasPermission(context.Background(), u.ID, "Manage Users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected permission denied")
	}
}

func TestGetRoleByNameUnknown(t *testing.T) {
	svc := NewService(&fakePermissionRepo{}, newFakeUserRepo(), nil)

	if _, err := svc.GetRoleByName(context.Background(), "Ghost"); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
