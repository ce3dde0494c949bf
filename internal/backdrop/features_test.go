package backdrop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	payload, _ := json.Marshal(data)
	fmt.Fprintf(w, `{"success":true,"message":null,"data":%s}`, payload)
}

func TestFeatureCallers_EncodeQueriesAndBodies(t *testing.T) {
	t.Parallel()

	var gotLogsQuery, gotContentQuery url.Values
	var gotStatusBody, gotReorderBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case loginPath:
			loginHandler(http.StatusOK, true)(w, r)
		case apiPrefix + "reports/status":
			writeEnvelope(w, []StatusItem{{Title: "PHP", Value: "8.2", Severity: "ok"}})
		case apiPrefix + "reports/logs":
			gotLogsQuery = r.URL.Query()
			writeEnvelope(w, Page[LogEntry]{Items: []LogEntry{{ID: 9, Severity: "error"}}, Total: 1, Page: 1, Limit: 50, Pages: 1})
		case apiPrefix + "content/list":
			gotContentQuery = r.URL.Query()
			items := make([]ContentItem, 20)
			for i := range items {
				items[i] = ContentItem{ID: int64(20 + i), Title: fmt.Sprintf("node %d", 20+i), Type: "post", Status: "published"}
			}
			writeEnvelope(w, Page[ContentItem]{Items: items, Total: 45, Page: 2, Limit: 20, Pages: 3})
		case apiPrefix + "content/7/status":
			body, _ := io.ReadAll(r.Body)
			gotStatusBody = string(body)
			fmt.Fprint(w, `{"success":true,"message":"updated","data":null}`)
		case apiPrefix + "blocks/reorder":
			body, _ := io.ReadAll(r.Body)
			gotReorderBody = string(body)
			fmt.Fprint(w, `{"success":true,"message":"reordered","data":null}`)
		case apiPrefix + "blocks/list":
			writeEnvelope(w, []Block{{ID: "search", Title: "Search", Region: "sidebar", Weight: 0, Enabled: true}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c := New(Options{})
	mustLogin(t, c, server)
	ctx := context.Background()

	status, err := c.StatusReport(ctx)
	if err != nil {
		t.Fatalf("StatusReport returned error: %v", err)
	}
	if len(status) != 1 || status[0].Title != "PHP" {
		t.Fatalf("StatusReport = %#v, want one PHP row", status)
	}

	logs, err := c.Watchdog(ctx, LogQuery{Page: 0, Limit: 50, Severity: "error", Type: "php"})
	if err != nil {
		t.Fatalf("Watchdog returned error: %v", err)
	}
	if len(logs.Items) != 1 || logs.Items[0].ID != 9 {
		t.Fatalf("Watchdog items = %#v, want one entry id=9", logs.Items)
	}
	if gotLogsQuery.Get("page") != "1" || // page 0 clamps up to 1
		gotLogsQuery.Get("limit") != "50" ||
		gotLogsQuery.Get("severity") != "error" ||
		gotLogsQuery.Get("type") != "php" {
		t.Fatalf("Watchdog query = %v, want clamped page and filters", gotLogsQuery)
	}

	// Page 2 of 45 items at limit 20: full page, pages derived as 3.
	content, err := c.ListContent(ctx, ContentQuery{Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("ListContent returned error: %v", err)
	}
	if content.Page != 2 || content.Pages != 3 || len(content.Items) != 20 {
		t.Fatalf("ListContent page = %d/%d with %d items, want 2/3 with 20", content.Page, content.Pages, len(content.Items))
	}
	if !content.HasNext() {
		t.Fatal("HasNext() = false on page 2 of 3")
	}
	if gotContentQuery.Get("page") != "2" || gotContentQuery.Get("limit") != "20" {
		t.Fatalf("ListContent query = %v, want page=2 limit=20", gotContentQuery)
	}

	msg, err := c.SetContentStatus(ctx, 7, "unpublished")
	if err != nil {
		t.Fatalf("SetContentStatus returned error: %v", err)
	}
	if msg != "updated" {
		t.Fatalf("SetContentStatus message = %q, want updated", msg)
	}
	if gotStatusBody != `{"status":"unpublished"}` {
		t.Fatalf("SetContentStatus body = %q, want status payload", gotStatusBody)
	}

	blocks, err := c.ListBlocks(ctx)
	if err != nil {
		t.Fatalf("ListBlocks returned error: %v", err)
	}
	if len(blocks) != 1 || blocks[0].ID != "search" {
		t.Fatalf("ListBlocks = %#v, want one search block", blocks)
	}

	if _, err := c.ReorderBlocks(ctx, "sidebar", []string{"search", "menu"}); err != nil {
		t.Fatalf("ReorderBlocks returned error: %v", err)
	}
	if gotReorderBody != `{"region":"sidebar","order":["search","menu"]}` {
		t.Fatalf("ReorderBlocks body = %q, want region and order", gotReorderBody)
	}
}

func TestRunCron_DecodesResultOrBareAck(t *testing.T) {
	var withDetails bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case loginPath:
			loginHandler(http.StatusOK, true)(w, r)
		case apiPrefix + "cron/run":
			w.Header().Set("Content-Type", "application/json")
			if withDetails {
				writeEnvelope(w, CronResult{Ran: true, DurationMS: 240, LastRun: "2026-08-30 10:00:00"})
			} else {
				fmt.Fprint(w, `{"success":true,"message":"cron ran","data":null}`)
			}
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c := New(Options{})
	mustLogin(t, c, server)
	ctx := context.Background()

	result, err := c.RunCron(ctx)
	if err != nil {
		t.Fatalf("RunCron (bare ack) returned error: %v", err)
	}
	if !result.Ran || result.DurationMS != 0 {
		t.Fatalf("bare ack result = %#v, want Ran=true with no details", result)
	}

	withDetails = true
	result, err = c.RunCron(ctx)
	if err != nil {
		t.Fatalf("RunCron (detailed) returned error: %v", err)
	}
	if !result.Ran || result.DurationMS != 240 {
		t.Fatalf("detailed result = %#v, want Ran=true duration 240ms", result)
	}
}

func TestFeatureCallers_GuardClauses(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()

	// Guard clauses fire before the authentication check ever runs.
	if _, err := c.GetContent(ctx, 0); err == nil {
		t.Fatal("GetContent(0) returned nil error, want error")
	}
	if _, err := c.DeleteUser(ctx, -1); err == nil {
		t.Fatal("DeleteUser(-1) returned nil error, want error")
	}
	if _, err := c.SetBlockRegion(ctx, "", "sidebar"); err == nil {
		t.Fatal("SetBlockRegion with empty id returned nil error, want error")
	}
	if _, err := c.ReorderBlocks(ctx, "sidebar", nil); err == nil {
		t.Fatal("ReorderBlocks with empty order returned nil error, want error")
	}
	if _, err := c.UploadFile(ctx, nil); err == nil {
		t.Fatal("UploadFile(nil) returned nil error, want error")
	}
}

func TestUploadFile_SendsMultipartForm(t *testing.T) {
	var gotName, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case loginPath:
			loginHandler(http.StatusOK, true)(w, r)
		case apiPrefix + "files/upload":
			file, header, err := r.FormFile("file")
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			defer file.Close()
			content, _ := io.ReadAll(file)
			gotName = header.Filename
			gotContent = string(content)
			writeEnvelope(w, File{ID: 12, Name: header.Filename, URI: "public://" + header.Filename, MIME: "text/plain", Size: int64(len(content))})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello backdrop"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := New(Options{})
	mustLogin(t, c, server)

	stored, err := c.UploadFile(context.Background(), DiskFile(path))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
	if gotName != "notes.txt" || gotContent != "hello backdrop" {
		t.Fatalf("server saw %q/%q, want notes.txt with file content", gotName, gotContent)
	}
	if stored.ID != 12 || stored.Size != int64(len("hello backdrop")) {
		t.Fatalf("stored file = %#v, want id=12 and matching size", stored)
	}
}

func TestListUsersAndComments_DecodeTypedRecords(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case loginPath:
			loginHandler(http.StatusOK, true)(w, r)
		case apiPrefix + "users/list":
			writeEnvelope(w, Page[User]{
				Items: []User{{ID: 1, Name: "admin", Email: "admin@example.com", Roles: []string{"administrator"}, Status: "active"}},
				Total: 1, Page: 1, Limit: 20, Pages: 1,
			})
		case apiPrefix + "comments/list":
			writeEnvelope(w, Page[Comment]{
				Items: []Comment{{ID: 3, Subject: "nice post", Author: "visitor", NodeID: 7, NodeTitle: "Hello", Status: "unapproved"}},
				Total: 1, Page: 1, Limit: 20, Pages: 1,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c := New(Options{})
	mustLogin(t, c, server)
	ctx := context.Background()

	users, err := c.ListUsers(ctx, UserQuery{})
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users.Items) != 1 || users.Items[0].Name != "admin" {
		t.Fatalf("ListUsers = %#v, want one admin", users.Items)
	}

	comments, err := c.ListComments(ctx, CommentQuery{Status: "unapproved"})
	if err != nil {
		t.Fatalf("ListComments returned error: %v", err)
	}
	if len(comments.Items) != 1 || comments.Items[0].Status != "unapproved" {
		t.Fatalf("ListComments = %#v, want one unapproved comment", comments.Items)
	}
}
