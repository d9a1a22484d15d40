package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "apotik:apotik@tcp(localhost:3306)/apotik_online?parseTime=true&multiStatements=true&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS members (
	  id CHAR(36) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  password_hash VARCHAR(100) NOT NULL,
	  name VARCHAR(100) NOT NULL,
	  phone VARCHAR(32) NOT NULL DEFAULT '',
	  role VARCHAR(16) NOT NULL DEFAULT 'member',
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_members_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS categories (
	  id CHAR(36) NOT NULL,
	  name VARCHAR(100) NOT NULL,
	  slug VARCHAR(120) NOT NULL,
	  description VARCHAR(255) NOT NULL DEFAULT '',
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_categories_slug (slug)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS products (
	  id CHAR(36) NOT NULL,
	  category_id CHAR(36) NOT NULL,
	  sku VARCHAR(64) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  slug VARCHAR(255) NOT NULL,
	  description TEXT,
	  price INT NOT NULL,
	  stock INT NOT NULL DEFAULT 0,
	  requires_prescription TINYINT(1) NOT NULL DEFAULT 0,
	  image_url VARCHAR(255) NOT NULL DEFAULT '',
	  status VARCHAR(16) NOT NULL DEFAULT 'active',
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_products_sku (sku),
	  UNIQUE KEY ux_products_slug (slug),
	  KEY ix_products_category_id (category_id),
	  CONSTRAINT fk_products_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS carts (
	  id CHAR(36) NOT NULL,
	  member_id CHAR(36) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_carts_member_id (member_id),
	  CONSTRAINT fk_carts_member FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS cart_items (
	  id CHAR(36) NOT NULL,
	  cart_id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  quantity INT NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_cart_items_cart_product (cart_id, product_id),
	  CONSTRAINT fk_cart_items_cart FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE,
	  CONSTRAINT fk_cart_items_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS orders (
	  id CHAR(36) NOT NULL,
	  order_number VARCHAR(32) NOT NULL,
	  member_id CHAR(36) NULL,
	  customer_name VARCHAR(100) NOT NULL,
	  customer_email VARCHAR(255) NOT NULL DEFAULT '',
	  customer_phone VARCHAR(32) NOT NULL DEFAULT '',
	  total_amount INT NOT NULL,
	  shipping_cost INT NOT NULL DEFAULT 0,
	  shipping_address VARCHAR(255) NOT NULL DEFAULT '',
	  shipping_city VARCHAR(100) NOT NULL DEFAULT '',
	  shipping_postal_code VARCHAR(16) NOT NULL DEFAULT '',
	  payment_method VARCHAR(32) NOT NULL,
	  payment_status VARCHAR(16) NOT NULL DEFAULT 'pending',
	  order_status VARCHAR(16) NOT NULL DEFAULT 'pending',
	  source VARCHAR(16) NOT NULL DEFAULT 'store',
	  gateway_reference VARCHAR(128) NULL,
	  qr_string TEXT NULL,
	  paid_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_orders_order_number (order_number),
	  KEY ix_orders_member_id (member_id),
	  KEY ix_orders_payment_status (payment_status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_items (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  product_name VARCHAR(255) NOT NULL,
	  price INT NOT NULL,
	  quantity INT NOT NULL,
	  subtotal INT NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_items_order_id (order_id),
	  KEY ix_order_items_product_id (product_id),
	  CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_events (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  actor_id CHAR(36) NOT NULL,
	  action VARCHAR(32) NOT NULL,
	  from_status VARCHAR(16) NOT NULL,
	  to_status VARCHAR(16) NOT NULL,
	  note VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_events_order_id (order_id),
	  CONSTRAINT fk_order_events_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS payments (
	  id CHAR(36) NOT NULL,
	  reference VARCHAR(128) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  provider VARCHAR(32) NOT NULL,
	  amount INT NOT NULL,
	  payment_method VARCHAR(32) NOT NULL DEFAULT '',
	  status VARCHAR(32) NOT NULL,
	  paid_at DATETIME(3) NULL,
	  raw_payload JSON NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_payments_reference (reference),
	  KEY ix_payments_order_id (order_id),
	  CONSTRAINT fk_payments_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS settings (
	  setting_key VARCHAR(32) NOT NULL,
	  active_gateway VARCHAR(32) NOT NULL DEFAULT 'duitku',
	  merchant_code VARCHAR(64) NOT NULL,
	  api_key VARCHAR(128) NOT NULL,
	  private_key VARCHAR(128) NOT NULL,
	  sandbox TINYINT(1) NOT NULL DEFAULT 1,
	  callback_url VARCHAR(255) NOT NULL,
	  return_url VARCHAR(255) NOT NULL,
	  store_name VARCHAR(128) NOT NULL DEFAULT '',
	  store_address VARCHAR(255) NOT NULL DEFAULT '',
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (setting_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ all tables created successfully")
}
