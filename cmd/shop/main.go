// Package main is the interactive storefront shell: a session-backed
// client that keeps a cart and customer login in sync with the remote
// shop across restarts.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/regenefi/storefront/internal/client/session"
	"github.com/regenefi/storefront/internal/config"
	"github.com/regenefi/storefront/internal/logger"
	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/repository"
	"github.com/regenefi/storefront/internal/service"
	"github.com/regenefi/storefront/internal/shopify"
)

var (
	version   string
	buildDate string
)

// shell holds the services the REPL commands operate on.
type shell struct {
	cart    *service.CartService
	auth    *service.AuthService
	catalog *service.CatalogService
	blog    *service.BlogService
}

// repl runs the interactive loop, accepting commands to browse the shop
// and manage the cart and account.
func repl(ctx context.Context, sh *shell) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("shop> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, products, product <handle>, add <variant-id> <qty>,")
			fmt.Println("  cart, update <line-id> <qty>, remove <line-id>, checkout,")
			fmt.Println("  login <email> <password>, logout, register <email> <password>,")
			fmt.Println("  account, order <id>, blog, article <handle>, exit")
		case "products":
			sh.listProducts(ctx)
		case "product":
			if len(args) < 2 {
				fmt.Println("Usage: product <handle>")
				continue
			}
			sh.showProduct(ctx, args[1])
		case "add":
			if len(args) < 3 {
				fmt.Println("Usage: add <variant-id> <qty>")
				continue
			}
			qty, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				fmt.Println("Quantity must be a number")
				continue
			}
			if sh.cart.AddItem(ctx, args[1], qty) {
				fmt.Println("Added to cart")
			} else {
				fmt.Println(sh.cart.Err())
			}
		case "cart":
			sh.showCart(ctx)
		case "update":
			if len(args) < 3 {
				fmt.Println("Usage: update <line-id> <qty>")
				continue
			}
			qty, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("Quantity must be a whole number")
				continue
			}
			if sh.cart.UpdateItem(ctx, args[1], qty) {
				fmt.Println("Cart updated")
			} else {
				fmt.Println(sh.cart.Err())
			}
		case "remove":
			if len(args) < 2 {
				fmt.Println("Usage: remove <line-id>")
				continue
			}
			if sh.cart.RemoveItem(ctx, args[1]) {
				fmt.Println("Removed from cart")
			} else {
				fmt.Println(sh.cart.Err())
			}
		case "checkout":
			if url := sh.cart.CheckoutURL(); url != "" {
				fmt.Println("Checkout at:", url)
			} else {
				fmt.Println("Cart is empty")
			}
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			if err := sh.auth.Login(ctx, args[1], args[2]); err != nil {
				fmt.Println("Login failed:", err)
			} else {
				fmt.Println("Logged in")
			}
		case "logout":
			sh.auth.Logout()
			fmt.Println("Logged out")
		case "register":
			if len(args) < 3 {
				fmt.Println("Usage: register <email> <password>")
				continue
			}
			input := models.CustomerInput{Email: &args[1], Password: &args[2]}
			if _, err := sh.auth.Register(ctx, input); err != nil {
				fmt.Println("Registration failed:", err)
			} else {
				fmt.Println("Account created, use 'login' to sign in")
			}
		case "account":
			sh.showAccount(ctx)
		case "order":
			if len(args) < 2 {
				fmt.Println("Usage: order <id>")
				continue
			}
			sh.showOrder(ctx, args[1])
		case "blog":
			sh.listArticles(ctx)
		case "article":
			if len(args) < 2 {
				fmt.Println("Usage: article <handle>")
				continue
			}
			sh.showArticle(ctx, args[1])
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (sh *shell) listProducts(ctx context.Context) {
	products, err := sh.catalog.Products(ctx, 20)
	if err != nil {
		fmt.Println("Failed to load products:", err)
		return
	}
	for _, p := range products {
		fmt.Printf("%s  %s\n", p.Handle, p.Title)
	}
}

func (sh *shell) showProduct(ctx context.Context, handle string) {
	product, err := sh.catalog.ProductByHandle(ctx, handle)
	if err != nil {
		fmt.Println("Failed to load product:", err)
		return
	}
	if product == nil {
		fmt.Println("Product not found")
		return
	}
	fmt.Println(product.Title)
	if product.Description != "" {
		fmt.Println(product.Description)
	}
	for _, v := range product.Variants {
		avail := "in stock"
		if !v.AvailableForSale {
			avail = "sold out"
		}
		fmt.Printf("  %s  %s  %s %s  (%s)\n", v.ID, v.Title, v.Price.Amount, v.Price.CurrencyCode, avail)
	}
}

func (sh *shell) showCart(ctx context.Context) {
	if err := sh.cart.Refresh(ctx); err != nil {
		fmt.Println("Failed to refresh cart:", err)
	}
	lines := sh.cart.Snapshot()
	if len(lines) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, l := range lines {
		fmt.Printf("%s  %dx %s - %s  %s %s\n",
			l.ID, l.Quantity, l.Merchandise.ProductTitle, l.Merchandise.Title,
			l.Merchandise.Price.Amount, l.Merchandise.Price.CurrencyCode)
	}
	fmt.Printf("Items: %d  Total: %.2f\n", sh.cart.Count(), sh.cart.Total())
}

func (sh *shell) showAccount(ctx context.Context) {
	if _, err := sh.auth.RefreshCustomer(ctx); err != nil {
		fmt.Println("Not logged in")
		return
	}
	c := sh.auth.Customer()
	fmt.Printf("%s %s <%s>\n", c.FirstName, c.LastName, c.Email)
	if c.DefaultAddress != nil {
		a := c.DefaultAddress
		fmt.Printf("Default address: %s, %s %s, %s\n", a.Address1, a.City, a.Zip, a.Country)
	}
	for _, o := range c.Orders {
		fmt.Printf("Order %s  %s  %s %s  %s\n",
			o.Name, o.ProcessedAt.Format("2006-01-02"),
			o.TotalPrice.Amount, o.TotalPrice.CurrencyCode, o.FulfillmentStatus)
	}
}

func (sh *shell) showOrder(ctx context.Context, orderID string) {
	order, err := sh.auth.OrderDetails(ctx, orderID)
	if err != nil {
		fmt.Println("Failed to load order:", err)
		return
	}
	fmt.Printf("Order %s  %s\n", order.Name, order.ProcessedAt.Format("2006-01-02"))
	for _, item := range order.LineItems {
		fmt.Printf("  %dx %s\n", item.Quantity, item.Title)
	}
	fmt.Printf("Total: %s %s\n", order.TotalPrice.Amount, order.TotalPrice.CurrencyCode)
}

func (sh *shell) listArticles(ctx context.Context) {
	for _, a := range sh.blog.Articles(ctx, 10) {
		fmt.Printf("%s  %s  (%s)\n", a.Handle, a.Title, a.PublishedAt.Format("2006-01-02"))
	}
}

func (sh *shell) showArticle(ctx context.Context, handle string) {
	article := sh.blog.ArticleByHandle(ctx, handle)
	if article == nil {
		fmt.Println("Article not found")
		return
	}
	fmt.Printf("%s\nBy %s on %s\n\n%s\n",
		article.Title, article.Author, article.PublishedAt.Format("2006-01-02"), article.Content)
}

// main parses configuration, restores the saved session, and starts the
// interactive shell.
func main() {
	var showVer bool
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	options := config.Parse()

	if showVer {
		fmt.Printf("Storefront Shell\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	store := session.NewStore(options.SessionFile)
	if err := store.Load(); err != nil {
		log.Log.Warn("failed to load session, starting fresh", zap.Error(err))
	}

	client := shopify.NewClient(options.GraphQLURL(), options.StorefrontToken, zapLogger)
	sh := &shell{
		cart:    service.NewCartService(repository.NewShopifyCartRepository(client), store, zapLogger),
		auth:    service.NewAuthService(repository.NewShopifyCustomerRepository(client), store, zapLogger),
		catalog: service.NewCatalogService(repository.NewShopifyCatalogRepository(client)),
		blog:    service.NewBlogService(repository.NewShopifyBlogRepository(client), zapLogger),
	}

	ctx := context.Background()

	// Restore server state for the saved session before the first prompt.
	if err := sh.cart.Refresh(ctx); err != nil {
		zapLogger.Warn("failed to restore cart", zap.Error(err))
	}
	if store.Token() != "" {
		if _, err := sh.auth.RefreshCustomer(ctx); err != nil {
			zapLogger.Warn("failed to restore customer session", zap.Error(err))
		}
	}

	repl(ctx, sh)
}
