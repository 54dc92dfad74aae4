package testutil

import (
	"errors"
	"mime/multipart"
	"path"
	"sync"
)

var ErrFakeStorage = errors.New("fake storage failure")

// FakeStorage records blob operations in memory.
type FakeStorage struct {
	mu        sync.Mutex
	Uploaded  []string
	Deleted   []string
	FailOnKey string
}

func (f *FakeStorage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := path.Join(folder, fileName)
	f.Uploaded = append(f.Uploaded, key)
	return key, nil
}

func (f *FakeStorage) DeleteFile(objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if objectKey == f.FailOnKey {
		return ErrFakeStorage
	}
	f.Deleted = append(f.Deleted, objectKey)
	return nil
}

func (f *FakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://blob.test/" + objectKey
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer collects messages instead of sending them.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

func (m *FakeMailer) SendMail(toEmail string, subject string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: toEmail, Subject: subject, Body: body})
	return nil
}

func (m *FakeMailer) Messages() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.Sent...)
}
