package db

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    pages INTEGER NOT NULL CHECK (pages >= 0),
    author TEXT NOT NULL,
    publisher TEXT NOT NULL,
    year INTEGER NOT NULL
);`, `
CREATE INDEX IF NOT EXISTS idx_books_title ON books (title);`, `
CREATE TABLE IF NOT EXISTS book_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    book_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    actor TEXT NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    full_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    disabled BOOLEAN NOT NULL DEFAULT FALSE
);`,
}

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS books (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    pages INTEGER NOT NULL CHECK (pages >= 0),
    author TEXT NOT NULL,
    publisher TEXT NOT NULL,
    year INTEGER NOT NULL
);`, `
CREATE INDEX IF NOT EXISTS idx_books_title ON books (title);`, `
CREATE TABLE IF NOT EXISTS book_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMPTZ NOT NULL,
    type TEXT NOT NULL,
    book_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    actor TEXT NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    full_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    disabled BOOLEAN NOT NULL DEFAULT FALSE
);`,
}

var postgresDrop = []string{
	`DROP TABLE IF EXISTS book_events;`,
	`DROP TABLE IF EXISTS books;`,
}
