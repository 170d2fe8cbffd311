package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/marygen/internal/fields"
	"github.com/hurou927/marygen/internal/schema"
)

// recorder upper-cases every string and remembers what it was asked.
type recorder struct {
	seen []string
	fail string
}

func (r *recorder) Translate(_ context.Context, text string) (string, error) {
	r.seen = append(r.seen, text)
	if text == r.fail {
		return "", errors.New("quota exceeded")
	}
	return strings.ToUpper(text), nil
}

func userFields() []fields.Mapping {
	return fields.MapColumns([]schema.Column{
		{Name: "id", DataType: "integer"},
		{Name: "name", DataType: "varchar"},
		{Name: "email", DataType: "varchar"},
		{Name: "password", DataType: "varchar"},
	}, "id")
}

func newRenderer(t *testing.T, prefix string, tr *recorder) *Renderer {
	t.Helper()
	var r *Renderer
	var err error
	if tr == nil {
		r, err = New(prefix, nil)
	} else {
		r, err = New(prefix, tr)
	}
	require.NoError(t, err)
	return r
}

func TestFormFields(t *testing.T) {
	r := newRenderer(t, "", nil)

	got, err := r.FormFields(context.Background(), userFields())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `<x-input wire:model="name" required label="Name" />`, lines[0])
	assert.Equal(t, `<x-input wire:model="email" icon="o-envelope" required label="Email" />`, lines[1])
	assert.Equal(t, `<x-input type="password" wire:model="password" icon="o-lock-closed" required label="Password" />`, lines[2])
}

func TestFormFields_PasswordIgnoresStorageType(t *testing.T) {
	r := newRenderer(t, "mary-", nil)
	mapped := []fields.Mapping{
		fields.MapColumn(schema.Column{Name: "password", DataType: "text", Nullable: true}),
		fields.MapColumn(schema.Column{Name: "bio", DataType: "text", Nullable: true}),
		fields.MapColumn(schema.Column{Name: "is_admin", DataType: "bool"}),
		fields.MapColumn(schema.Column{Name: "born_at", DataType: "timestamp", Nullable: true}),
	}

	got, err := r.FormFields(context.Background(), mapped)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `<x-mary-input type="password" wire:model="password" icon="o-lock-closed" label="Password" />`, lines[0])
	assert.Equal(t, `<x-mary-textarea wire:model="bio" label="Bio" />`, lines[1])
	assert.Equal(t, `<x-mary-checkbox wire:model="is_admin" required label="Is Admin" />`, lines[2])
	assert.Equal(t, `<x-mary-datepicker wire:model="born_at" label="Born At" />`, lines[3])
}

func TestProperties(t *testing.T) {
	r := newRenderer(t, "", nil)
	mapped := fields.MapColumns([]schema.Column{
		{Name: "id", DataType: "bigint"},
		{Name: "name", DataType: "varchar"},
		{Name: "age", DataType: "integer", Nullable: true},
		{Name: "active", DataType: "boolean"},
	}, "id")

	want := "#[Validate('required')]\npublic string $name;\n" +
		"\n#[Validate('nullable')]\npublic ?int $age = null;\n" +
		"\n#[Validate('required')]\npublic bool $active;\n"
	assert.Equal(t, want, r.Properties(mapped))
}

func TestTableColumns_ActionsLast(t *testing.T) {
	r := newRenderer(t, "", nil)

	got, err := r.TableColumns(context.Background(), userFields())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "['key' => 'name', 'label' => 'Name', 'sortable' => true],", lines[0])
	assert.Equal(t, "['key' => 'email', 'label' => 'Email', 'sortable' => true],", lines[1])
	assert.Equal(t, "['key' => 'password', 'label' => 'Password', 'sortable' => true],", lines[2])
	assert.Equal(t, "['key' => 'actions', 'label' => 'Actions', 'sortable' => false],", lines[3])

	empty, err := r.TableColumns(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "['key' => 'actions', 'label' => 'Actions', 'sortable' => false],\n", empty)
}

func TestRender_Page(t *testing.T) {
	r := newRenderer(t, "mary-", nil)

	got, err := r.Render(context.Background(), Page{
		Model:          "User",
		ModelNamespace: `App\Models`,
		PrimaryKey:     "id",
		SortColumn:     "created_at",
		Columns:        []string{"id", "name", "email", "password", "created_at"},
		Fields:         userFields(),
	})
	require.NoError(t, err)

	assert.Contains(t, got, `use App\Models\User;`)
	assert.Contains(t, got, `public array $sortBy = ['column' => 'created_at', 'direction' => 'desc'];`)
	assert.Contains(t, got, "    #[Validate('required')]\n    public string $email;")
	assert.Contains(t, got, `public function users(): \Illuminate\Pagination\LengthAwarePaginator`)
	assert.Contains(t, got, `'users' => $this->users(),`)
	assert.Contains(t, got, `<x-mary-header title="Users" subtitle="User List"`)
	assert.Contains(t, got, `wire:click="openEditModal({{ $user->id }})"`)
	assert.Contains(t, got, `$this->reset(['name', 'email', 'password']);`)
	assert.Contains(t, got, "            ['key' => 'actions', 'label' => 'Actions', 'sortable' => false],\n        ];")
	assert.Contains(t, got, "return User::query()\n            ->orderBy(")
	assert.NotContains(t, got, "mgLike")
	assert.NotContains(t, got, "[[")

	// form fields appear once per modal
	assert.Equal(t, 2, strings.Count(got, `<x-mary-input type="password" wire:model="password"`))
}

func TestRender_UniqueIDsAndSearch(t *testing.T) {
	r := newRenderer(t, "", nil)

	got, err := r.Render(context.Background(), Page{
		Model:          "BlogPost",
		ModelNamespace: `App\Models\`,
		PrimaryKey:     "uuid",
		UniqueIDs:      true,
		SortColumn:     "uuid",
		SearchFilter:   true,
		Columns:        []string{"uuid", "title"},
		Fields:         fields.MapColumns([]schema.Column{{Name: "uuid", DataType: "uuid"}, {Name: "title", DataType: "varchar"}}, "uuid"),
	})
	require.NoError(t, err)

	assert.Contains(t, got, `use App\Models\BlogPost;`)
	assert.Contains(t, got, `wire:click="openDeleteModal('{{ $blogPost->uuid }}')"`)
	assert.Contains(t, got, "return BlogPost::query()\n            ->when($this->search, fn(Builder $q) => $q->mgLike(['uuid', 'title'], $this->search))\n            ->orderBy(")
	assert.Contains(t, got, `public function blogPosts()`)
	assert.Contains(t, got, `title="Blogposts"`)
}

func TestRender_TranslatesEveryString(t *testing.T) {
	tr := &recorder{}
	r := newRenderer(t, "", tr)

	got, err := r.Render(context.Background(), Page{
		Model:          "User",
		ModelNamespace: `App\Models`,
		PrimaryKey:     "id",
		SortColumn:     "id",
		Fields:         userFields(),
	})
	require.NoError(t, err)

	for _, s := range []string{"Name", "Email", "Password", "Actions", "Search...", "Add New User",
		"Edit User", "Create New User", "Cancel", "Save", "Yes", "No",
		"Are you sure you want to delete this record?", "Record created successfully."} {
		assert.Contains(t, tr.seen, s)
	}
	assert.Contains(t, got, `label="NAME"`)
	assert.Contains(t, got, `'label' => 'ACTIONS'`)
	assert.Contains(t, got, `placeholder="SEARCH..."`)
	assert.Contains(t, got, `$this->success('RECORD UPDATED SUCCESSFULLY.');`)
	// identifiers are never translated
	assert.Contains(t, got, `wire:model="name"`)
}

func TestRender_TranslationFailurePropagates(t *testing.T) {
	r := newRenderer(t, "", &recorder{fail: "Email"})

	_, err := r.Render(context.Background(), Page{Model: "User", ModelNamespace: `App\Models`, PrimaryKey: "id", Fields: userFields()})
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestSearchClause(t *testing.T) {
	assert.Equal(t,
		"->when($this->search, fn(Builder $q) => $q->mgLike(['id', 'name'], $this->search))",
		SearchClause([]string{"id", "name"}))
}
