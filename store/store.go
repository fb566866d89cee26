// Package store owns the sqlite connection registered in the container as
// the "database" service.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/dstanziola/copypoint/config"
)

// schema is applied on every open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS categorias (
	id_categoria INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre TEXT NOT NULL UNIQUE,
	tipo TEXT NOT NULL CHECK (tipo IN ('MATERIAL', 'SERVICIO'))
);

CREATE TABLE IF NOT EXISTS productos (
	id_producto INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre TEXT NOT NULL,
	id_categoria INTEGER NOT NULL,
	stock INTEGER NOT NULL DEFAULT 0,
	costo REAL NOT NULL DEFAULT 0,
	precio REAL NOT NULL DEFAULT 0,
	tasa_impuesto REAL NOT NULL DEFAULT 0,
	activo INTEGER NOT NULL DEFAULT 1,
	FOREIGN KEY (id_categoria) REFERENCES categorias(id_categoria)
);

CREATE TABLE IF NOT EXISTS clientes (
	id_cliente INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre TEXT NOT NULL,
	ruc TEXT,
	activo INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS usuarios (
	id_usuario INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre_usuario TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	rol TEXT NOT NULL DEFAULT 'VENDEDOR',
	activo INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS ventas (
	id_venta INTEGER PRIMARY KEY AUTOINCREMENT,
	id_cliente INTEGER,
	subtotal REAL NOT NULL,
	impuestos REAL NOT NULL,
	total REAL NOT NULL,
	fecha DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	responsable TEXT,
	FOREIGN KEY (id_cliente) REFERENCES clientes(id_cliente)
);

CREATE TABLE IF NOT EXISTS detalle_ventas (
	id_detalle INTEGER PRIMARY KEY AUTOINCREMENT,
	id_venta INTEGER NOT NULL,
	id_producto INTEGER NOT NULL,
	cantidad INTEGER NOT NULL,
	precio_unitario REAL NOT NULL,
	FOREIGN KEY (id_venta) REFERENCES ventas(id_venta),
	FOREIGN KEY (id_producto) REFERENCES productos(id_producto)
);

CREATE TABLE IF NOT EXISTS movimientos (
	id_movimiento INTEGER PRIMARY KEY AUTOINCREMENT,
	id_producto INTEGER NOT NULL,
	tipo_movimiento TEXT NOT NULL CHECK (tipo_movimiento IN ('ENTRADA', 'VENTA', 'AJUSTE')),
	cantidad INTEGER NOT NULL,
	fecha DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	responsable TEXT,
	observaciones TEXT,
	FOREIGN KEY (id_producto) REFERENCES productos(id_producto)
);

CREATE TABLE IF NOT EXISTS tickets (
	id_ticket INTEGER PRIMARY KEY AUTOINCREMENT,
	folio TEXT NOT NULL UNIQUE,
	tipo TEXT NOT NULL CHECK (tipo IN ('VENTA', 'ENTRADA')),
	id_venta INTEGER,
	generado_por TEXT,
	fecha DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (id_venta) REFERENCES ventas(id_venta)
);

CREATE TABLE IF NOT EXISTS company_config (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	nombre TEXT NOT NULL,
	ruc TEXT,
	direccion TEXT,
	telefono TEXT,
	itbms REAL NOT NULL DEFAULT 0.07
);
`

// DB wraps the sqlite connection. It is registered as a singleton and
// closed by the container during Cleanup.
type DB struct {
	*sql.DB
	path string
}

// Open opens (creating if needed) the sqlite database at cfg.Path and
// applies the schema. The pool is capped at a single connection: sqlite
// allows one writer, and the application is single-process.
func Open(cfg config.DBConfig) (*DB, error) {
	dsn := "file:" + cfg.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", cfg.Path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	return &DB{DB: db, path: cfg.Path}, nil
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }
