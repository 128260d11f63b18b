package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func newTestStore(t *testing.T, endpoint string) Store {
	t.Helper()
	client := s3.New(s3.Options{
		Region:                     "us-east-1",
		Credentials:                credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		BaseEndpoint:               aws.String(endpoint),
		UsePathStyle:               true,
		RetryMaxAttempts:           1,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
	return NewFromClient(client, "media")
}

const listPage = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>media</Name>
  <Prefix>shows/</Prefix>
  <KeyCount>%d</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>%t</IsTruncated>
  %s
  %s
</ListBucketResult>`

func listBody(truncated bool, next string, keys ...string) string {
	var contents strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&contents, "<Contents><Key>%s</Key><Size>1</Size></Contents>", k)
	}
	token := ""
	if next != "" {
		token = "<NextContinuationToken>" + next + "</NextContinuationToken>"
	}
	return fmt.Sprintf(listPage, len(keys), truncated, contents.String(), token)
}

func TestS3ListPaginates(t *testing.T) {
	var mu sync.Mutex
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()

		if r.URL.Path != "/media" && r.URL.Path != "/media/" {
			t.Errorf("path = %q, want bucket root", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("prefix") != "shows/" {
			t.Errorf("prefix = %q, want shows/", q.Get("prefix"))
		}

		w.Header().Set("Content-Type", "application/xml")
		if q.Get("continuation-token") == "" {
			io.WriteString(w, listBody(true, "page2", "shows/a.mp3", "shows/b.txt"))
			return
		}
		io.WriteString(w, listBody(false, "", "shows/c.wav"))
	}))
	defer srv.Close()

	keys, err := newTestStore(t, srv.URL).List(context.Background(), "shows/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"shows/a.mp3", "shows/b.txt", "shows/c.wav"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("List() = %v, want %v", keys, want)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 pages", calls)
	}
}

func TestS3Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path == "/media/missing.csv" {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		io.WriteString(w, "podcast_id,episode_id,audio_url\n")
	}))
	defer srv.Close()

	store := newTestStore(t, srv.URL)

	data, err := store.Get(context.Background(), "shows/episodes.csv")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != "podcast_id,episode_id,audio_url\n" {
		t.Errorf("Get() = %q", data)
	}

	if _, err := store.Get(context.Background(), "missing.csv"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestS3Put(t *testing.T) {
	var gotMethod, gotPath, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod, gotPath, gotBody = r.Method, r.URL.Path, string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	text := "Ada Lovelace:\nHello there.\n\n"
	if err := newTestStore(t, srv.URL).Put(context.Background(), "transcripts/ep1.wav.txt", []byte(text)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/media/transcripts/ep1.wav.txt" {
		t.Errorf("path = %s", gotPath)
	}
	if !strings.Contains(gotBody, text) {
		t.Errorf("body = %q, want it to carry %q", gotBody, text)
	}
}

func TestS3PresignGet(t *testing.T) {
	store := newTestStore(t, "http://localhost:9000")

	url, err := store.PresignGet(context.Background(), "shows/ep1.mp3", time.Hour)
	if err != nil {
		t.Fatalf("PresignGet() error = %v", err)
	}

	for _, want := range []string{"http://localhost:9000/media/shows/ep1.mp3", "X-Amz-Expires=3600", "X-Amz-Signature="} {
		if !strings.Contains(url, want) {
			t.Errorf("presigned url %q missing %q", url, want)
		}
	}
}
