package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/api/wire"
)

func idParam(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &wire.ValidationError{Field: "id", Reason: "must be an integer"}
	}
	return id, nil
}

// -------------------- Products --------------------

func (srv *Server) HandleCreateProduct(c echo.Context) error {
	req, err := wire.Decode[wire.ProductRequest](c.Request().Body)
	if err != nil {
		return err
	}
	p, err := srv.svc.CreateProduct(req.Name, *req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, wire.ProductCreated(p.ID))
}

func (srv *Server) HandleGetProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	p, err := srv.svc.GetProduct(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (srv *Server) HandleListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, srv.svc.ListProducts())
}

// -------------------- Orders --------------------

func (srv *Server) HandleCreateOrder(c echo.Context) error {
	req, err := wire.Decode[wire.OrderRequest](c.Request().Body)
	if err != nil {
		return err
	}
	o, err := srv.svc.CreateOrder(req.Products)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, wire.OrderCreated(o.ID))
}

func (srv *Server) HandleGetOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	d, err := srv.svc.GetOrderDetail(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (srv *Server) HandleUpdateOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	req, err := wire.Decode[wire.OrderRequest](c.Request().Body)
	if err != nil {
		return err
	}
	if err := srv.svc.UpdateOrder(id, req.Products); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wire.OrderUpdated)
}

func (srv *Server) HandleDeleteOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := srv.svc.DeleteOrder(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wire.OrderDeleted)
}

func (srv *Server) HandleListOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, wire.OrderIndex(srv.svc.ListOrders()))
}
