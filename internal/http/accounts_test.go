package handlers_test

import (
	"fmt"
	"testing"
	"time"
)

func TestAccountCreation(t *testing.T) {
	env := setup(t)

	resp := env.request(t, "POST", "/api/accounts/", "", `{
		"email": "john@doe.com",
		"password": "abcd",
		"first_name": "John",
		"last_name": "Doe",
		"is_seller": true
	}`)
	wantStatus(t, resp, 201)

	m := decodeMap(t, resp)
	if m["is_seller"] != true {
		t.Fatalf("is_seller not echoed: %v", m)
	}
	if m["email"] != "john@doe.com" {
		t.Fatalf("wrong email: %v", m["email"])
	}
	if _, ok := m["date_joined"]; !ok {
		t.Fatal("date_joined missing")
	}
	if _, ok := m["password"]; ok {
		t.Fatal("password leaked into response")
	}
	if _, ok := m["is_superuser"]; ok {
		t.Fatal("is_superuser leaked into response")
	}
}

func TestAccountCreationNotSeller(t *testing.T) {
	env := setup(t)

	resp := env.request(t, "POST", "/api/accounts/", "", `{
		"email": "jane@doe.com",
		"password": "abcd",
		"first_name": "Jane",
		"last_name": "Doe",
		"is_seller": false
	}`)
	wantStatus(t, resp, 201)

	m := decodeMap(t, resp)
	if m["is_seller"] != false {
		t.Fatalf("is_seller not echoed: %v", m)
	}
}

func TestAccountCreationWrongKeys(t *testing.T) {
	env := setup(t)

	resp := env.request(t, "POST", "/api/accounts/", "", `{"is_seller": "teste"}`)
	wantStatus(t, resp, 400)

	m := decodeMap(t, resp)
	for _, field := range []string{"email", "password", "first_name", "last_name", "is_seller"} {
		if _, ok := m[field]; !ok {
			t.Fatalf("expected error for %s, body: %v", field, m)
		}
	}
	fieldMentions(t, m, "is_seller", "boolean")
}

func TestAccountCreationDuplicateEmail(t *testing.T) {
	env := setup(t)
	env.register(t, "jane@doe.com", false)

	resp := env.request(t, "POST", "/api/accounts/", "", `{
		"email": "Jane@Doe.com",
		"password": "abcd",
		"first_name": "Jane",
		"last_name": "Doe",
		"is_seller": false
	}`)
	wantStatus(t, resp, 400)
	fieldMentions(t, decodeMap(t, resp), "email", "already exists")
}

func TestAnyoneCanListAccounts(t *testing.T) {
	env := setup(t)
	for i := 1; i <= 3; i++ {
		env.register(t, fmt.Sprintf("email%d@shop.test", i), false)
	}

	resp := env.request(t, "GET", "/api/accounts/", "", "")
	wantStatus(t, resp, 200)

	list := decodeList(t, resp)
	if len(list) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(list))
	}
	for _, m := range list {
		if _, ok := m["password"]; ok {
			t.Fatal("password leaked into listing")
		}
	}
}

func TestNewestAccounts(t *testing.T) {
	env := setup(t)
	for i := 1; i <= 3; i++ {
		env.register(t, fmt.Sprintf("email%d@shop.test", i), false)
		time.Sleep(2 * time.Millisecond) // distinct join instants
	}

	resp := env.request(t, "GET", "/api/accounts/newest/2/", "", "")
	wantStatus(t, resp, 200)

	list := decodeList(t, resp)
	if len(list) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(list))
	}
	if list[0]["email"] != "email3@shop.test" || list[1]["email"] != "email2@shop.test" {
		t.Fatalf("wrong order: %v, %v", list[0]["email"], list[1]["email"])
	}
}

func TestNewestRejectsNonNumeric(t *testing.T) {
	env := setup(t)

	resp := env.request(t, "GET", "/api/accounts/newest/abc/", "", "")
	wantStatus(t, resp, 404)
}

func TestOwnerCanUpdateOwnAccount(t *testing.T) {
	env := setup(t)
	owner := env.register(t, "john@doe.com", true)
	token := env.token(t, owner)

	resp := env.request(t, "PATCH", "/api/accounts/"+owner.ID+"/", token,
		`{"email": "teste@mail.com", "password": "1234"}`)
	wantStatus(t, resp, 200)

	m := decodeMap(t, resp)
	if m["email"] != "teste@mail.com" {
		t.Fatalf("email not updated: %v", m["email"])
	}
	if _, ok := m["password"]; ok {
		t.Fatal("password leaked into response")
	}

	// the new credential must be live
	login := env.request(t, "POST", "/api/login/", "", `{"email":"teste@mail.com","password":"1234"}`)
	wantStatus(t, login, 200)
}

func TestOnlyOwnerCanUpdate(t *testing.T) {
	env := setup(t)
	owner := env.register(t, "john@doe.com", true)
	other := env.register(t, "jane@doe.com", false)
	wrongToken := env.token(t, other)

	resp := env.request(t, "PATCH", "/api/accounts/"+owner.ID+"/", wrongToken,
		`{"email": "test@mail.com"}`)
	wantStatus(t, resp, 403)
	detailContains(t, decodeMap(t, resp), "permission")
}

func TestUpdateRequiresToken(t *testing.T) {
	env := setup(t)
	owner := env.register(t, "john@doe.com", true)

	resp := env.request(t, "PATCH", "/api/accounts/"+owner.ID+"/", "", `{"first_name": "J"}`)
	wantStatus(t, resp, 401)
	detailContains(t, decodeMap(t, resp), "credentials were not provided")

	resp = env.request(t, "PATCH", "/api/accounts/"+owner.ID+"/", "bogus", `{"first_name": "J"}`)
	wantStatus(t, resp, 401)
	detailContains(t, decodeMap(t, resp), "Invalid token")
}

func TestOwnerCannotToggleIsActive(t *testing.T) {
	env := setup(t)
	owner := env.register(t, "john@doe.com", true)
	token := env.token(t, owner)

	resp := env.request(t, "PATCH", "/api/accounts/"+owner.ID+"/", token, `{"is_active": false}`)
	wantStatus(t, resp, 400)
	detailContains(t, decodeMap(t, resp), "is_active")

	got, err := env.accounts.ByID(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsActive {
		t.Fatal("forbidden field was applied anyway")
	}
}

func TestManagementRequiresSuperuser(t *testing.T) {
	env := setup(t)
	user := env.register(t, "john@doe.com", true)
	token := env.token(t, user)

	// even the account owner is denied on the management path
	resp := env.request(t, "PATCH", "/api/accounts/"+user.ID+"/management/", token, `{"is_active": false}`)
	wantStatus(t, resp, 403)
	detailContains(t, decodeMap(t, resp), "permission")
}

func TestSuperuserTogglesIsActive(t *testing.T) {
	env := setup(t)
	admin := env.registerSuperuser(t, "admin@admin.com")
	adminToken := env.token(t, admin)
	target := env.register(t, "john@doe.com", true)

	resp := env.request(t, "PATCH", "/api/accounts/"+target.ID+"/management/", adminToken, `{"is_active": false}`)
	wantStatus(t, resp, 200)
	m := decodeMap(t, resp)
	if m["is_active"] != false {
		t.Fatalf("is_active not toggled: %v", m)
	}

	// deactivated accounts cannot authenticate
	login := env.request(t, "POST", "/api/login/", "", `{"email":"john@doe.com","password":"abcd"}`)
	wantStatus(t, login, 401)

	resp = env.request(t, "PATCH", "/api/accounts/"+target.ID+"/management/", adminToken, `{"is_active": true}`)
	wantStatus(t, resp, 200)
	m = decodeMap(t, resp)
	if m["is_active"] != true {
		t.Fatalf("is_active not restored: %v", m)
	}
}

func TestManagementRequiresIsActiveField(t *testing.T) {
	env := setup(t)
	admin := env.registerSuperuser(t, "admin@admin.com")
	adminToken := env.token(t, admin)
	target := env.register(t, "john@doe.com", false)

	resp := env.request(t, "PATCH", "/api/accounts/"+target.ID+"/management/", adminToken, `{}`)
	wantStatus(t, resp, 400)
	detailContains(t, decodeMap(t, resp), "is_active is required")
}

func TestManagementRejectsOtherFields(t *testing.T) {
	env := setup(t)
	admin := env.registerSuperuser(t, "admin@admin.com")
	adminToken := env.token(t, admin)
	target := env.register(t, "john@doe.com", false)

	resp := env.request(t, "PATCH", "/api/accounts/"+target.ID+"/management/", adminToken,
		`{"is_active": false, "email": "hijack@mail.com"}`)
	wantStatus(t, resp, 400)
	detailContains(t, decodeMap(t, resp), "email")

	got, err := env.accounts.ByID(target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != "john@doe.com" || !got.IsActive {
		t.Fatal("rejected update was partially applied")
	}
}

func TestUpdateUnknownAccount(t *testing.T) {
	env := setup(t)
	user := env.register(t, "john@doe.com", false)
	token := env.token(t, user)

	resp := env.request(t, "PATCH", "/api/accounts/no-such-id/", token, `{"first_name": "X"}`)
	wantStatus(t, resp, 404)
}
