/*

Package main provides a toy example use of switchback's routing engine:
a product catalog backed by Postgres through gorm,
with the CRUD routes derived from the repository's methods.

*/
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/switchback-web/switchback"
	"github.com/switchback-web/switchback/app"
	"github.com/switchback-web/switchback/http/middleware"
	"github.com/switchback-web/switchback/http/repo"
	"github.com/switchback-web/switchback/http/router"
	"github.com/switchback-web/switchback/http/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Product struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type newProduct struct {
	Name  string `json:"name" validate:"required,min=3"`
	Price int64  `json:"price" validate:"min=0"`
}

type patchProduct struct {
	Name  string `json:"name" validate:"omitempty,min=3"`
	Price *int64 `json:"price" validate:"omitempty,min=0"`
}

type productParams struct {
	ID uint `schema:"id" validate:"required"`
}

type listParams struct {
	Limit int `schema:"limit" validate:"omitempty,min=1,max=100"`
}

// ProductRepository opts into create, list, get, patch, and delete;
// update is deliberately absent, so no PUT route registers.
type ProductRepository struct {
	db *gorm.DB
}

func (p *ProductRepository) Create(w http.ResponseWriter, r *http.Request) error {
	in, _ := schema.Body[newProduct](r)
	product := Product{Name: in.Name, Price: in.Price}
	if err := p.db.WithContext(r.Context()).Create(&product).Error; err != nil {
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(product)
}

func (p *ProductRepository) List(w http.ResponseWriter, r *http.Request) error {
	params, _ := schema.Query[listParams](r)
	if params.Limit == 0 {
		params.Limit = 25
	}

	var products []Product
	if err := p.db.WithContext(r.Context()).Limit(params.Limit).Find(&products).Error; err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(products)
}

func (p *ProductRepository) Get(w http.ResponseWriter, r *http.Request) error {
	params, _ := schema.Params[productParams](r)

	var product Product
	err := p.db.WithContext(r.Context()).First(&product, params.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %d", switchback.ErrNotExist, params.ID)
	}

	if err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(product)
}

func (p *ProductRepository) Patch(w http.ResponseWriter, r *http.Request) error {
	params, _ := schema.Params[productParams](r)
	in, _ := schema.Body[patchProduct](r)

	updates := map[string]any{}
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}

	tx := p.db.WithContext(r.Context()).Model(&Product{}).Where("id = ?", params.ID).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", switchback.ErrNotExist, params.ID)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (p *ProductRepository) Delete(w http.ResponseWriter, r *http.Request) error {
	params, _ := schema.Params[productParams](r)
	if err := p.db.WithContext(r.Context()).Delete(&Product{}, params.ID).Error; err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func main() {
	a := app.New()

	db, err := gorm.Open(postgres.Open(os.Getenv("DATABASE_URL")), &gorm.Config{})
	if err != nil {
		a.Logger().Fatal(err.Error(), nil)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&Product{}); err != nil {
		a.Logger().Fatal(err.Error(), nil)
		os.Exit(1)
	}

	idSpec := schema.Spec{Params: schema.Struct[productParams]()}
	patchSpec := schema.Spec{
		Params: schema.Struct[productParams](),
		Body:   schema.Struct[patchProduct](),
	}

	a.Router().Group("api", func(api *router.Router) {
		repo.Register(api, &ProductRepository{db: db}, repo.Config{
			PathName: "products",
			Methods: map[repo.Op]repo.Method{
				repo.OpCreate: {Schema: schema.Single(schema.Struct[newProduct]())},
				repo.OpList:   {Schema: schema.Single(schema.Struct[listParams]())},
				repo.OpGet:    {Schema: idSpec},
				repo.OpPatch:  {Schema: patchSpec},
				repo.OpDelete: {Schema: idSpec},
			},
		})
	}, middleware.RateLimit(middleware.NewVisitors()), middleware.CORS("http://localhost:5173"))

	err = a.Run(func(w http.ResponseWriter, r *http.Request, err error) bool {
		if errors.Is(err, switchback.ErrNotExist) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return true
		}

		return false
	})
	if err != nil {
		a.Logger().Error(err.Error(), nil)
	}
}
